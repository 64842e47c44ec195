package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"auction-courier/core/gateway"
)

// Seq is a feed cursor. The wire value is a number on older database
// versions and an opaque string on newer ones; both decode into this type.
type Seq string

func (s *Seq) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, (*string)(s))
	}
	*s = Seq(string(b))
	return nil
}

// Row is one delivered change with its auction document.
type Row struct {
	Doc gateway.Auction `json:"doc"`
}

// Changes is one batch of the feed.
type Changes struct {
	LastSeq Seq   `json:"last_seq"`
	Results []Row `json:"results"`
}

// Client is a minimal CouchDB-style client covering the changes feed and the
// design documents the feed filter lives in.
type Client struct {
	http *http.Client
	base string
	user string
	pass string
}

// NewClient creates a feed database client.
func NewClient(cfg Config) *Client {
	timeout := cfg.RequestTimeoutSeconds
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

	base := strings.TrimSuffix(cfg.URL, "/") + "/" + cfg.Name
	return &Client{
		http: &http.Client{Transport: transport, Timeout: timeoutDuration},
		base: base,
		user: cfg.User,
		pass: cfg.Password,
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s feed db: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, &gateway.StatusError{Code: resp.StatusCode, Message: "feed db " + path}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode feed response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Changes requests the next batch of changed auction documents since the
// given cursor.
func (c *Client) Changes(ctx context.Context, since Seq, limit int, filter string) (Changes, error) {
	q := url.Values{}
	q.Set("include_docs", "true")
	q.Set("limit", strconv.Itoa(limit))
	if filter != "" {
		q.Set("filter", filter)
	}
	if since != "" {
		q.Set("since", string(since))
	}

	var changes Changes
	if _, err := c.do(ctx, http.MethodGet, "/_changes?"+q.Encode(), nil, &changes); err != nil {
		return Changes{}, err
	}
	return changes, nil
}

// GetDesignDoc fetches a design document. Absence is reported via the bool.
func (c *Client) GetDesignDoc(ctx context.Context, id string, out any) (bool, error) {
	status, err := c.do(ctx, http.MethodGet, "/"+id, nil, out)
	if status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutDesignDoc writes a design document.
func (c *Client) PutDesignDoc(ctx context.Context, id string, doc any) error {
	_, err := c.do(ctx, http.MethodPut, "/"+id, doc, nil)
	return err
}
