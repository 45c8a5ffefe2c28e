package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yessgo/coin-terminal/pkg/config"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
)

// Client fetches partner catalogs from the remote service. One blocking
// round-trip per call, bounded by a fixed timeout; failed fetches are
// reported, never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient builds a catalog client from the catalog config.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type productsResponse struct {
	Items []Product `json:"items"`
}

// FetchProducts returns the partner's product list, or a dependency
// error when the remote call fails or times out.
func (c *Client) FetchProducts(ctx context.Context, partnerID int64) ([]Product, error) {
	url := fmt.Sprintf("%s/partners/%d/products", c.baseURL, partnerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch catalog")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown partner")
	}
	if res.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog service returned %d", res.StatusCode))
	}

	var payload productsResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return payload.Items, nil
}

// ValidatePartner reports whether the partner id resolves to a catalog.
// The remote service has no dedicated lookup endpoint; a successful
// product fetch is the validity signal.
func (c *Client) ValidatePartner(ctx context.Context, partnerID int64) (bool, error) {
	_, err := c.FetchProducts(ctx, partnerID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Ping checks reachability of the catalog service for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/partners/1/products", nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping catalog service: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("catalog service unhealthy: %d", res.StatusCode)
	}
	return nil
}
