package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/herald/internal/cli"
	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign [payload-file]",
	Short: "Sign an interaction payload for local testing",
	Long: `Prints the signature headers for a payload read from a file, or stdin when no file
is given. The key is read from --key or HERALD_SIGNING_KEY.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyHex, _ := cmd.Flags().GetString("key")
		if keyHex == "" {
			keyHex = os.Getenv(cli.SigningKeyEnv)
		}
		if keyHex == "" {
			return fmt.Errorf("no signing key: pass --key or set %s", cli.SigningKeyEnv)
		}
		key, err := cli.ParseSigningKey(keyHex)
		if err != nil {
			return err
		}

		var body []byte
		if len(args) == 1 {
			body, err = os.ReadFile(args[0])
		} else {
			body, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}

		ts, _ := cmd.Flags().GetString("timestamp")
		if ts == "" {
			ts = strconv.FormatInt(time.Now().Unix(), 10)
		}
		return cli.SignPayload(cmd.OutOrStdout(), key, ts, body)
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().String("key", "", "Hex signing seed or private key")
	signCmd.Flags().String("timestamp", "", "Timestamp to sign (default: now, unix seconds)")
}
