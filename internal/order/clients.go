package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/catalog"
)

// CatalogClient resolves current vehicle data from the catalog service over
// HTTP. Calls go through a circuit breaker; a missing vehicle does not count
// as a failure.
type CatalogClient struct {
	HTTP    *http.Client
	BaseURL string
	cb      *gobreaker.CircuitBreaker[*catalog.Vehicle]
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		cb: gobreaker.NewCircuitBreaker[*catalog.Vehicle](gobreaker.Settings{
			Name:        "catalog",
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, apperr.ErrNotFound)
			},
		}),
	}
}

func (c *CatalogClient) Vehicle(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error) {
	v, err := c.cb.Execute(func() (*catalog.Vehicle, error) {
		return c.fetch(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &VehicleSnapshot{ID: v.ID, Brand: v.Brand, Model: v.Model, Year: v.Year, Price: v.Price}, nil
}

func (c *CatalogClient) fetch(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/vehicles/%s", c.BaseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperr.NotFound("vehicle", id.String())
	default:
		return nil, fmt.Errorf("catalog: unexpected status %s", res.Status)
	}
	var v catalog.Vehicle
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("catalog: decode vehicle: %w", err)
	}
	return &v, nil
}
