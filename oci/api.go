package oci

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const apiVersion = "20160918"

type service string

const (
	serviceIdentity service = "identity"
	serviceCore     service = "iaas"
)

// Client for the OCI identity, compute, compute management and virtual network APIs.
type Client struct {
	region     string
	signer     *Signer
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sends every request to baseURL instead of the regional service endpoints.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new OCI API client for region.
func NewClient(region string, signer *Signer, opts ...Option) *Client {
	c := &Client{
		region: region,
		signer: signer,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError represents a structured error from the OCI API.
type APIError struct {
	StatusCode   int
	Code         string `json:"code"`
	Message      string `json:"message"`
	OpcRequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OCI API Error (status %d): %s - %s (opc-request-id: %s)", e.StatusCode, e.Code, e.Message, e.OpcRequestID)
}

func (c *Client) endpoint(svc service) string {
	if c.baseURL != "" {
		return c.baseURL + "/" + apiVersion
	}
	return fmt.Sprintf("https://%s.%s.oraclecloud.com/%s", svc, c.region, apiVersion)
}

// call performs one signed request and decodes a 2xx JSON response into out.
func (c *Client) call(ctx context.Context, method string, svc service, path string, query url.Values, body, out any) error {
	fullURL, err := url.Parse(c.endpoint(svc) + path)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		fullURL.RawQuery = query.Encode()
	}

	var reqBody []byte
	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("opc-request-id", uuid.NewString())
	if method == http.MethodPost {
		req.Header.Set("opc-retry-token", uuid.NewString())
	}

	if err := c.signer.Sign(req, reqBody); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode:   resp.StatusCode,
			OpcRequestID: resp.Header.Get("opc-request-id"),
		}
		if json.Unmarshal(respBody, apiErr) != nil {
			apiErr.Message = string(respBody)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s %s response: %w", method, path, err)
	}
	return nil
}

// setIf adds key to q when value is non-empty.
func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
