package gateway

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
)

// envelope is the {"data": ...} wrapper all resource APIs use for request and
// response bodies.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// client is the shared JSON-over-HTTP plumbing for one resource collection.
type client struct {
	http     *http.Client
	base     string
	token    string
	resource string
}

func newClient(cfg Config, resource string) *client {
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

	base := strings.TrimSuffix(cfg.URL, "/")
	return &client{
		http:     &http.Client{Transport: transport, Timeout: timeoutDuration},
		base:     fmt.Sprintf("%s/api/%s/%s", base, cfg.Version, resource),
		token:    cfg.Token,
		resource: resource,
	}
}

func (c *client) do(ctx context.Context, method, path, rev string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal %s request: %w", c.resource, err)
		}
		wrapped, err := json.Marshal(envelope{Data: raw})
		if err != nil {
			return 0, fmt.Errorf("marshal %s envelope: %w", c.resource, err)
		}
		body = bytes.NewReader(wrapped)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rev != "" {
		req.Header.Set("If-Match", rev)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, c.resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return resp.StatusCode, &StatusError{
			Code:    resp.StatusCode,
			Message: strings.TrimSpace(string(msg)),
		}
	}

	if out != nil {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s response: %w", c.resource, err)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s data: %w", c.resource, err)
		}
	}
	return resp.StatusCode, nil
}

// get fetches one resource item. Absence (404) is reported via the bool, not
// the error.
func (c *client) get(ctx context.Context, id string, out any) (bool, error) {
	status, err := c.do(ctx, http.MethodGet, "/"+id, "", nil, out)
	if status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *client) patch(ctx context.Context, path, rev string, in, out any) error {
	_, err := c.do(ctx, http.MethodPatch, path, rev, in, out)
	return err
}

func (c *client) post(ctx context.Context, path string, in, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, "", in, out)
	return err
}

// LotClient implements LotGateway over the lots API.
type LotClient struct {
	c *client
}

func NewLotClient(cfg Config) *LotClient {
	return &LotClient{c: newClient(cfg, "lots")}
}

func (l *LotClient) Get(ctx context.Context, id string) (Lot, bool, error) {
	var lot Lot
	found, err := l.c.get(ctx, id, &lot)
	return lot, found, err
}

func (l *LotClient) Patch(ctx context.Context, id string, patch LotPatch) (Lot, error) {
	var lot Lot
	err := l.c.patch(ctx, "/"+id, "", patch, &lot)
	return lot, err
}

func (l *LotClient) PatchWithRev(ctx context.Context, id, rev string, patch LotPatch) (Lot, error) {
	var lot Lot
	err := l.c.patch(ctx, "/"+id, rev, patch, &lot)
	return lot, err
}

func (l *LotClient) PatchSubitem(ctx context.Context, lotID, subitemName, subitemID string, patch map[string]any) error {
	path := fmt.Sprintf("/%s/%s/%s", lotID, subitemName, subitemID)
	return l.c.patch(ctx, path, "", patch, nil)
}

// AuctionClient implements AuctionGateway over the auctions API.
type AuctionClient struct {
	c *client
}

func NewAuctionClient(cfg Config) *AuctionClient {
	return &AuctionClient{c: newClient(cfg, "auctions")}
}

func (a *AuctionClient) Get(ctx context.Context, id string) (Auction, bool, error) {
	var auction Auction
	found, err := a.c.get(ctx, id, &auction)
	return auction, found, err
}

func (a *AuctionClient) Patch(ctx context.Context, id string, patch AuctionPatch) (Auction, error) {
	var auction Auction
	err := a.c.patch(ctx, "/"+id, "", patch, &auction)
	return auction, err
}

func (a *AuctionClient) CreateDocument(ctx context.Context, auctionID string, doc Document) (Document, error) {
	var created Document
	err := a.c.post(ctx, "/"+auctionID+"/documents", doc, &created)
	return created, err
}

func (a *AuctionClient) ExtractCredentials(ctx context.Context, id string) (string, error) {
	var creds struct {
		TransferToken string `json:"transfer_token"`
	}
	if _, err := a.c.do(ctx, http.MethodGet, "/"+id+"/extract_credentials", "", nil, &creds); err != nil {
		return "", err
	}
	return creds.TransferToken, nil
}

func (a *AuctionClient) GetFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.c.token)

	resp, err := a.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode, Message: "get file"}
	}
	return io.ReadAll(resp.Body)
}

// AssetClient implements AssetGateway over the assets API.
type AssetClient struct {
	c *client
}

func NewAssetClient(cfg Config) *AssetClient {
	return &AssetClient{c: newClient(cfg, "assets")}
}

func (a *AssetClient) Get(ctx context.Context, id string) (Asset, bool, error) {
	var asset Asset
	found, err := a.c.get(ctx, id, &asset)
	return asset, found, err
}

// ContractClient implements ContractGateway over the contracting API.
type ContractClient struct {
	c *client
}

func NewContractClient(cfg Config) *ContractClient {
	return &ContractClient{c: newClient(cfg, "contracts")}
}

func (cc *ContractClient) Create(ctx context.Context, data map[string]any) (Contract, error) {
	var contract Contract
	err := cc.c.post(ctx, "", data, &contract)
	return contract, err
}
