package domain

// OptionType enumerates the platform's command option types.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
	OptionAttachment      OptionType = 11
)

// CommandOptionDefinition describes one argument of a registered command.
type CommandOptionDefinition struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Type        OptionType `yaml:"type" json:"type"`
	Required    bool       `yaml:"required" json:"required"`
}

// CommandDefinition is a command as registered on the platform.
// ID is assigned by the platform and is empty for definitions not yet registered.
type CommandDefinition struct {
	ID          string                    `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string                    `yaml:"name" json:"name"`
	Description string                    `yaml:"description" json:"description"`
	Options     []CommandOptionDefinition `yaml:"options,omitempty" json:"options,omitempty"`
}
