package feed

// Config holds configuration for the auction changes feed.
type Config struct {
	// URL is the base URL of the document database host.
	URL string `mapstructure:"url" default:"http://127.0.0.1:5984"`
	// Name is the database holding auction documents.
	Name string `mapstructure:"name" default:"auctions"`
	// User and Password authenticate against the database.
	User     string `mapstructure:"user" default:""`
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds is the sleep interval after an empty batch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// Limit is the maximum number of rows requested per poll.
	Limit int `mapstructure:"limit" default:"100"`
	// Filter is the server-side filter applied to the feed.
	Filter string `mapstructure:"filter" default:"courier_filters/courier_feed"`
	// RequestTimeoutSeconds is the per-request timeout in seconds.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"30"`
}
