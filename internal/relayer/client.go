package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
)

// SubmitRequest is the sponsored-transaction submission payload. The relayer
// pays gas; there is no fallback path where the user signs and pays.
type SubmitRequest struct {
	RequestID string `json:"request_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Data      string `json:"data"`
	Value     string `json:"value"`
}

// SubmitResponse is the relayer's acceptance of a submission
type SubmitResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Client talks to the gas sponsorship relayer service
//
//go:generate mockgen -source=client.go -destination=../mocks/relayer_client.go -package=mocks -mock_names=Client=MockRelayerClient
type Client interface {
	// SubmitTransaction submits a sponsored call. Accepted submissions are
	// never auto-retried; a rejection is final.
	SubmitTransaction(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)

	// RegisterAccount registers a delegated smart account for sponsorship
	RegisterAccount(ctx context.Context, ownerAddress string, accountAddress string) error
}

type httpClient struct {
	baseURL string
	apiKey  string
	http    adapter.HTTPClient
}

// NewClient creates a relayer Client over its HTTP JSON API
func NewClient(baseURL, apiKey string, http adapter.HTTPClient) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http,
	}
}

func (c *httpClient) headers() map[string]string {
	h := map[string]string{"Content-Type": "application/json"}
	if c.apiKey != "" {
		h["Authorization"] = "Bearer " + c.apiKey
	}
	return h
}

// SubmitTransaction submits a sponsored call
func (c *httpClient) SubmitTransaction(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submit request: %w", err)
	}

	body, err := c.http.Post(ctx, c.baseURL+"/v1/transactions", c.headers(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionRejected, err)
	}

	var resp SubmitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}
	if resp.Status == "rejected" {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionRejected, resp.Reason)
	}
	if resp.TxHash == "" {
		return nil, fmt.Errorf("%w: relayer returned no transaction hash", domain.ErrTransactionRejected)
	}
	return &resp, nil
}

// RegisterAccount registers a delegated smart account for sponsorship
func (c *httpClient) RegisterAccount(ctx context.Context, ownerAddress string, accountAddress string) error {
	payload, err := json.Marshal(map[string]string{
		"owner":   ownerAddress,
		"account": accountAddress,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal register request: %w", err)
	}

	if _, err := c.http.Post(ctx, c.baseURL+"/v1/accounts", c.headers(), bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to register account %s: %w", accountAddress, err)
	}
	return nil
}

// Initializer adapts the relayer client to the identity resolver's
// account-initialization hook
type Initializer struct {
	client Client
}

// NewInitializer creates an Initializer backed by the relayer
func NewInitializer(client Client) *Initializer {
	return &Initializer{client: client}
}

// EnsureReady registers the delegated account with the relayer
func (i *Initializer) EnsureReady(ctx context.Context, primaryAddress string, delegatedAddress string) error {
	return i.client.RegisterAccount(ctx, primaryAddress, delegatedAddress)
}
