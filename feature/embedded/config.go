package embedded

// Config holds configuration for the embedded-auction family.
type Config struct {
	// Aliases are the auction type tags handled by this family.
	Aliases []string `mapstructure:"aliases" default:"sellout.english,sellout.insider"`
}
