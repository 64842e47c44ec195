package docstore

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Store keeps documents in an S3-compatible bucket. Registration
// synthesizes the object key from the content hash; Upload puts the bytes
// under that key.
type S3Store struct {
	client *minio.Client
	bucket string
	scheme string
	logger *zap.Logger
}

// NewS3Store creates a Minio-backed document store based on the
// configuration.
func NewS3Store(cfg Config, logger *zap.Logger) (*S3Store, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &S3Store{client: client, bucket: cfg.Bucket, scheme: scheme, logger: logger}, nil
}

func (s *S3Store) RegisterUpload(ctx context.Context, hash string) (RegisteredUpload, error) {
	// The hash alone is not unique across re-registrations of the same
	// document, so the key gets a fresh suffix.
	key := fmt.Sprintf("%s/%s", hash, uuid.NewString())
	url := fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.client.EndpointURL().Host, s.bucket, key)
	s.logger.Debug("Registered s3 document upload",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
	)
	return RegisteredUpload{UploadURL: url, URL: url}, nil
}

func (s *S3Store) Upload(ctx context.Context, uploadURL string, data []byte) error {
	prefix := fmt.Sprintf("%s://%s/%s/", s.scheme, s.client.EndpointURL().Host, s.bucket)
	key := strings.TrimPrefix(uploadURL, prefix)
	if key == uploadURL {
		return fmt.Errorf("upload url %q is outside bucket %q", uploadURL, s.bucket)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
