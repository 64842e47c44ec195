package directlock

// Config holds configuration for the direct-lock family.
type Config struct {
	// Aliases are the auction type tags handled by this family.
	Aliases []string `mapstructure:"aliases" default:"rubble.standard,rubble.financial"`
}
