package controllers

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yessgo/coin-terminal/internal/catalog"
	"github.com/yessgo/coin-terminal/internal/terminal"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
)

type stubCatalogClient struct {
	products []catalog.Product
	fetchErr error
	valid    bool
	loginErr error
}

func (c *stubCatalogClient) FetchProducts(context.Context, int64) ([]catalog.Product, error) {
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.products, nil
}

func (c *stubCatalogClient) ValidatePartner(context.Context, int64) (bool, error) {
	if c.loginErr != nil {
		return false, c.loginErr
	}
	return c.valid, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testMetrics() *metrics.TerminalMetrics {
	return metrics.NewTerminalMetrics(nil)
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 5, Name: "Plov", Price: decimal.NewFromInt(100), OriginalPrice: decimal.NewFromInt(120)},
		{ID: 7, Name: "Lagman", Price: decimal.NewFromInt(40), OriginalPrice: decimal.NewFromInt(45)},
	}
}

func newManagerOnly(client *stubCatalogClient) (*terminal.Manager, error) {
	return terminal.NewManager(client)
}

func newLoggedInSession(t *testing.T, client *stubCatalogClient) (*terminal.Manager, *terminal.Session) {
	t.Helper()
	client.valid = true
	manager, err := terminal.NewManager(client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session, err := manager.Login(context.Background(), 10, "Yess!Go Store")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return manager, session
}
