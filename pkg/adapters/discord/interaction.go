package discord

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// DecodeInteraction parses a raw interaction payload.
// The raw body and signature headers are kept on the result untouched.
// Only command payloads go through discordgo's typed decoding; every other type is mapped
// from the envelope alone so the dispatcher can refuse it.
func DecodeInteraction(rawBody []byte, signature, timestamp string) (domain.InboundInteraction, error) {
	var envelope struct {
		Type  int    `json:"type"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return domain.InboundInteraction{}, fmt.Errorf("failed to decode interaction: %w", err)
	}

	in := domain.InboundInteraction{
		Type:            domain.InteractionType(envelope.Type),
		CompletionToken: envelope.Token,
		RawBody:         rawBody,
		Signature:       signature,
		Timestamp:       timestamp,
	}

	if in.Type == domain.InteractionCommand {
		var payload discordgo.Interaction
		if err := json.Unmarshal(rawBody, &payload); err != nil {
			return domain.InboundInteraction{}, fmt.Errorf("failed to decode command interaction: %w", err)
		}
		data := payload.ApplicationCommandData()
		in.CommandName = data.Name
		in.Options = make([]domain.Option, 0, len(data.Options))
		for _, opt := range data.Options {
			if opt == nil {
				continue
			}
			in.Options = append(in.Options, domain.Option{Name: opt.Name, Value: opt.Value})
		}
	}
	return in, nil
}
