package client

import (
	"context"
	"net/url"

	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// CatalogClient reads the element catalog.
type CatalogClient struct {
	client *Client
}

// Element fetches one element by symbol.
func (cc *CatalogClient) Element(ctx context.Context, symbol string) (*chemistry.ElementView, error) {
	if symbol == "" {
		return nil, errors.InvalidParam("symbol is required")
	}
	var el chemistry.ElementView
	if err := cc.client.get(ctx, "/api/v1/elements/"+url.PathEscape(symbol), nil, &el); err != nil {
		return nil, err
	}
	return &el, nil
}

// Elements lists the catalog, optionally filtered by class key.
func (cc *CatalogClient) Elements(ctx context.Context, class string) ([]chemistry.ElementView, error) {
	q := url.Values{}
	if class != "" {
		q.Set("class", class)
	}
	var list struct {
		Elements []chemistry.ElementView `json:"elements"`
		Count    int                     `json:"count"`
	}
	if err := cc.client.get(ctx, "/api/v1/elements", q, &list); err != nil {
		return nil, err
	}
	return list.Elements, nil
}

// Summary fetches per-class statistics.
func (cc *CatalogClient) Summary(ctx context.Context) (*chemistry.CatalogSummary, error) {
	var sum chemistry.CatalogSummary
	if err := cc.client.get(ctx, "/api/v1/elements/summary", nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// Bond classifies the bond between two elements.
func (cc *CatalogClient) Bond(ctx context.Context, a, b string) (*chemistry.BondReport, error) {
	if a == "" || b == "" {
		return nil, errors.InvalidParam("both symbols are required")
	}
	q := url.Values{"a": {a}, "b": {b}}
	var rep chemistry.BondReport
	if err := cc.client.get(ctx, "/api/v1/bonds", q, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

//Personal.AI order the ending
