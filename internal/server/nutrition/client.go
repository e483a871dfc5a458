// Package nutrition implements the outbound nutrition estimate collaborator.
// It is strictly best-effort: callers treat any failure as "no data" and must
// never let it abort their own writes.
package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config carries the estimate API settings. It is injected explicitly at
// construction; nothing in this package reads ambient/global state.
// An empty APIKey disables the collaborator.
type Config struct {
	APIURL  string
	APIKey  string
	APIHost string
	Timeout time.Duration
}

// Ingredient is one line of an estimate request. Amount is grams; the
// caller normalizes free-text amounts before building the request.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Facts are the macro totals the API reports for the whole ingredient list.
type Facts struct {
	CaloriesKcal        *float64 `json:"caloriesKcal"`
	TotalFatG           *float64 `json:"totalFatG"`
	SaturatedFatG       *float64 `json:"saturatedFatG"`
	CholesterolMg       *float64 `json:"cholesterolMg"`
	SodiumMg            *float64 `json:"sodiumMg"`
	TotalCarbohydratesG *float64 `json:"totalCarbohydratesG"`
	DietaryFiberG       *float64 `json:"dietaryFiberG"`
	SugarsG             *float64 `json:"sugarsG"`
	ProteinG            *float64 `json:"proteinG"`
}

// Estimator is the contract the recipe service consumes.
type Estimator interface {
	// Estimate returns macro totals for the ingredient list, or (nil, nil)
	// when the collaborator is not configured.
	Estimate(ctx context.Context, ingredients []Ingredient) (*Facts, error)
}

type estimateRequest struct {
	Ingredients []Ingredient `json:"ingredients"`
	Portions    int          `json:"portions"`
}

type estimateResponse struct {
	NutritionalValues *Facts `json:"nutritionalValues"`
}

// Client calls the estimate API over HTTP with a bounded timeout.
type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Estimate(ctx context.Context, ingredients []Ingredient) (*Facts, error) {
	if c.cfg.APIKey == "" {
		// no key configured, skip the lookup
		return nil, nil
	}

	payload, err := json.Marshal(estimateRequest{Ingredients: ingredients, Portions: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create estimate request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.APIHost)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call estimate API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read estimate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("estimate API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed estimateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse estimate response: %w", err)
	}

	return parsed.NutritionalValues, nil
}
