package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"auction-courier/core/gateway"
)

// HTTPStore talks to a document-service REST API: registration returns the
// upload url and the public document url.
type HTTPStore struct {
	http *http.Client
	base string
	user string
	pass string
}

// NewHTTPStore creates a document-service client.
func NewHTTPStore(cfg Config) *HTTPStore {
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
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &HTTPStore{
		http: &http.Client{Transport: transport, Timeout: timeoutDuration},
		base: strings.TrimSuffix(cfg.URL, "/"),
		user: cfg.User,
		pass: cfg.Password,
	}
}

func (s *HTTPStore) RegisterUpload(ctx context.Context, hash string) (RegisteredUpload, error) {
	payload, err := json.Marshal(map[string]string{"hash": hash})
	if err != nil {
		return RegisteredUpload{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/register", bytes.NewReader(payload))
	if err != nil {
		return RegisteredUpload{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.user, s.pass)

	resp, err := s.http.Do(req)
	if err != nil {
		return RegisteredUpload{}, fmt.Errorf("register upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return RegisteredUpload{}, &gateway.StatusError{Code: resp.StatusCode, Message: "register upload"}
	}

	var out struct {
		UploadURL string `json:"upload_url"`
		Data      struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return RegisteredUpload{}, fmt.Errorf("decode register response: %w", err)
	}
	return RegisteredUpload{UploadURL: out.UploadURL, URL: out.Data.URL}, nil
}

func (s *HTTPStore) Upload(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.SetBasicAuth(s.user, s.pass)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload document: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return &gateway.StatusError{Code: resp.StatusCode, Message: "upload document"}
	}
	return nil
}
