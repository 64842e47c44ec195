package gateway

// Config holds connection settings for one resource API.
type Config struct {
	// URL is the base URL of the API host.
	URL string `mapstructure:"url" default:"http://127.0.0.1:6543"`
	// Token is the bearer token used for authentication.
	Token string `mapstructure:"token" default:"courier"`
	// Version is the API version segment of the request path.
	Version string `mapstructure:"version" default:"2.5"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
