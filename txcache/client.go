// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package txcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sprintertech/sprinter-filler/bundle"
	"github.com/sprintertech/sprinter-filler/orders"
)

const (
	RETRIES    = 3
	RETRY_WAIT = 500 * time.Millisecond
)

type OrdersResponse struct {
	Orders []orders.SignedOrder `json:"orders"`
}

type BundleResponse struct {
	ID uuid.UUID `json:"id"`
}

// Client talks to the transaction cache that collects orders and forwards bundles to
// block builders.
type Client struct {
	url        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = RETRIES - 1
	retryClient.RetryWaitMin = RETRY_WAIT
	retryClient.RetryWaitMax = RETRY_WAIT * 4
	retryClient.Logger = nil

	return &Client{
		url:        strings.TrimSuffix(url, "/"),
		HTTPClient: retryClient.StandardClient(),
	}
}

// GetOrders lists the pending orders of the cache.
func (c *Client) GetOrders(ctx context.Context) ([]orders.SignedOrder, error) {
	var resp OrdersResponse
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// ForwardBundle submits the bundle and returns the id assigned by the cache.
func (c *Client) ForwardBundle(ctx context.Context, b *bundle.Bundle) (uuid.UUID, error) {
	var resp BundleResponse
	if err := c.do(ctx, http.MethodPost, "/bundles", b, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

// ForwardOrder submits a signed order to be picked up by fillers.
func (c *Client) ForwardOrder(ctx context.Context, order *orders.SignedOrder) error {
	return c.do(ctx, http.MethodPost, "/orders", order, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	url := c.url + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, %s: %s", resp.StatusCode, url, string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
