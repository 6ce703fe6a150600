// Package collab is the client for the remote pharmacy-inventory API. It
// throttles, retries on transient failures and translates every failure
// mode, network, HTTP or payload, into a CollaboratorError.
package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/discovery"
)

const userAgent = "MediLink-SupplyService/1.0"

// Client talks to the collaborator inventory API with rate limiting and
// retry logic. It implements discovery.InventorySource.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        RetryConfig
	logger     zerolog.Logger
}

// NewClient creates a collaborator client for the given base URL. An empty
// apiKey sends no authentication header.
func NewClient(baseURL, apiKey string, timeout time.Duration, cfg RetryConfig) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:        cfg,
		logger:     log.With().Str("component", "collab_client").Logger(),
	}
}

// ApprovedPharmacies fetches the directory of pharmacies the collaborator
// has approved for dispensing.
func (c *Client) ApprovedPharmacies(ctx context.Context) ([]catalog.Pharmacy, error) {
	url := c.baseURL + "/api/internal/pharmacies/approved"

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Pharmacies []struct {
				ID           string `json:"id"`
				PharmacyName string `json:"pharmacyName"`
				LicenseID    string `json:"licenseId"`
				Location     *struct {
					Lat     float64 `json:"lat"`
					Lng     float64 `json:"lng"`
					Address string  `json:"address"`
					City    string  `json:"city"`
				} `json:"pharmacyLocation"`
			} `json:"pharmacies"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "approved_pharmacies", url, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &CollaboratorError{Op: "approved_pharmacies", URL: url, Err: fmt.Errorf("collaborator reported failure")}
	}

	pharmacies := make([]catalog.Pharmacy, 0, len(payload.Data.Pharmacies))
	for _, p := range payload.Data.Pharmacies {
		pharmacy := catalog.Pharmacy{
			ID:        p.ID,
			Name:      p.PharmacyName,
			LicenseID: p.LicenseID,
			Approval:  catalog.ApprovalApproved,
		}
		if p.Location != nil {
			pharmacy.City = p.Location.City
			pharmacy.Location = &catalog.Location{
				Latitude:  p.Location.Lat,
				Longitude: p.Location.Lng,
				Address:   p.Location.Address,
				City:      p.Location.City,
			}
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	return pharmacies, nil
}

// CheckAvailability asks the collaborator whether a pharmacy currently
// stocks a medicine.
func (c *Client) CheckAvailability(ctx context.Context, pharmacyID, medicineName string) (discovery.Availability, error) {
	url := c.baseURL + "/api/internal/availability"

	body, err := json.Marshal(map[string]string{
		"pharmacyId": pharmacyID,
		"medicine":   medicineName,
	})
	if err != nil {
		return discovery.Availability{}, &CollaboratorError{Op: "check_availability", URL: url, Err: err}
	}

	var payload struct {
		Success  bool   `json:"success"`
		Quantity int    `json:"quantity"`
		Price    int64  `json:"price"`
		Medicine string `json:"medicine"`
		Error    string `json:"error"`
	}

	if err := c.doJSON(ctx, "check_availability", http.MethodPost, url, body, &payload); err != nil {
		return discovery.Availability{}, err
	}
	if !payload.Success {
		reason := payload.Error
		if reason == "" {
			reason = "collaborator reported failure"
		}
		return discovery.Availability{}, &CollaboratorError{Op: "check_availability", URL: url, Err: fmt.Errorf("%s", reason)}
	}

	medicine := payload.Medicine
	if medicine == "" {
		medicine = medicineName
	}
	return discovery.Availability{
		Quantity: payload.Quantity,
		Price:    payload.Price,
		Medicine: medicine,
	}, nil
}

// inventoryRow tolerates the collaborator's two field spellings for each
// inventory attribute.
type inventoryRow struct {
	MedicineName string `json:"medicineName"`
	Name         string `json:"name"`
	Quantity     *int   `json:"quantity"`
	Stock        *int   `json:"stock"`
	Price        *int64 `json:"price"`
	UnitPrice    *int64 `json:"unitPrice"`
}

func (r inventoryRow) toItem() discovery.InventoryItem {
	item := discovery.InventoryItem{MedicineName: r.MedicineName}
	if item.MedicineName == "" {
		item.MedicineName = r.Name
	}
	switch {
	case r.Quantity != nil:
		item.Quantity = *r.Quantity
	case r.Stock != nil:
		item.Quantity = *r.Stock
	}
	switch {
	case r.Price != nil:
		item.Price = *r.Price
	case r.UnitPrice != nil:
		item.Price = *r.UnitPrice
	}
	return item
}

// ListInventory fetches a pharmacy's full inventory listing.
func (c *Client) ListInventory(ctx context.Context, pharmacyID string) ([]discovery.InventoryItem, error) {
	url := c.baseURL + "/api/internal/pharmacies/" + pharmacyID + "/inventory"

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Inventory []inventoryRow `json:"inventory"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "list_inventory", url, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &CollaboratorError{Op: "list_inventory", URL: url, Err: fmt.Errorf("collaborator reported failure")}
	}

	items := make([]discovery.InventoryItem, 0, len(payload.Data.Inventory))
	for _, row := range payload.Data.Inventory {
		item := row.toItem()
		if item.MedicineName == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, op, url string, out any) error {
	return c.doJSON(ctx, op, http.MethodGet, url, nil, out)
}

// doJSON performs one logical request with throttling and retries, then
// decodes the response body into out.
func (c *Client) doJSON(ctx context.Context, op, method, url string, body []byte, out any) error {
	data, err := c.do(ctx, op, method, url, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &CollaboratorError{Op: op, URL: url, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// do executes the request with rate limiting and retry on transient
// failures: network errors, 429 and 5xx statuses. Other statuses fail
// immediately.
func (c *Client) do(ctx context.Context, op, method, url string, body []byte) ([]byte, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &CollaboratorError{Op: op, URL: url, Attempts: attempt + 1, Err: err}
		}

		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, &CollaboratorError{Op: op, URL: url, Attempts: attempt + 1, Err: err}
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("X-Internal-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.cfg.MaxRetries {
				if werr := c.sleep(ctx, backoff(attempt, c.cfg)); werr != nil {
					return nil, &CollaboratorError{Op: op, URL: url, Attempts: attempt + 1, Err: werr}
				}
				continue
			}
			break
		}

		lastStatus = resp.StatusCode

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, &CollaboratorError{Op: op, URL: url, Status: resp.StatusCode, Attempts: attempt + 1, Err: err}
			}
			return data, nil
		}

		if !isRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, &CollaboratorError{Op: op, URL: url, Status: resp.StatusCode, Attempts: attempt + 1}
		}

		if attempt == c.cfg.MaxRetries {
			resp.Body.Close()
			break
		}

		var delay time.Duration
		if resp.StatusCode == http.StatusTooManyRequests {
			delay = rateLimitBackoff(attempt, c.cfg, resp.Header.Get("Retry-After"))
		} else {
			delay = backoff(attempt, c.cfg)
		}
		resp.Body.Close()

		c.logger.Debug().
			Str("op", op).
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("Retrying collaborator request")

		if werr := c.sleep(ctx, delay); werr != nil {
			return nil, &CollaboratorError{Op: op, URL: url, Status: lastStatus, Attempts: attempt + 1, Err: werr}
		}
	}

	return nil, &CollaboratorError{Op: op, URL: url, Status: lastStatus, Attempts: c.cfg.MaxRetries + 1, Err: lastErr}
}

// sleep waits for the delay or until the context is done.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
