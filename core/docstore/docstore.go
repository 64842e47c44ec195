package docstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RegisteredUpload is the result of registering a document upload: where to
// put the bytes and the public url the document will be served from.
type RegisteredUpload struct {
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
}

// Store is the destination document store. RegisterUpload reserves a slot for
// a document identified by its content hash; Upload puts the bytes to the
// reserved url.
type Store interface {
	RegisterUpload(ctx context.Context, hash string) (RegisteredUpload, error)
	Upload(ctx context.Context, uploadURL string, data []byte) error
}

// Config holds configuration for a document store.
type Config struct {
	// Backend selects the store implementation (http, s3).
	Backend string `mapstructure:"backend" default:"http"`
	// URL is the base URL of the http document service.
	URL string `mapstructure:"url" default:"http://127.0.0.1:6548"`
	// User and Password authenticate against the http document service.
	User     string `mapstructure:"user" default:""`
	Password string `mapstructure:"password" default:""`
	// Endpoint is the s3 endpoint for the s3 backend.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the s3 access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the s3 secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for s3 connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the s3 bucket documents are stored in.
	Bucket string `mapstructure:"bucket" default:"documents"`
	// Region is the s3 bucket location.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// New creates the Store selected by cfg.Backend.
func New(cfg Config, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "http":
		return NewHTTPStore(cfg), nil
	case "s3":
		return NewS3Store(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown docstore backend %q", cfg.Backend)
	}
}
