package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	apperrors "ketotrack/internal/errors"
)

// Nutrients holds the macro values reported by the food API for a given
// product name and weight. Values are already scaled to the requested grams.
type Nutrients struct {
	Kcal     uint `json:"kcal"`
	CarbG    uint `json:"carb_g"`
	FatG     uint `json:"fat_g"`
	ProteinG uint `json:"protein_g"`
}

// Client looks up nutrition data for a named product and weight.
type Client interface {
	Lookup(ctx context.Context, name string, grams uint) (Nutrients, error)
}

// HTTPClient queries an Edamam-style nutrition-data endpoint.
type HTTPClient struct {
	baseURL string
	appID   string
	appKey  string
	http    *http.Client
}

// NewHTTPClient builds a nutrition API client.
func NewHTTPClient(baseURL, appID, appKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// apiResponse mirrors the subset of the nutrition-data payload we consume.
type apiResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients struct {
		CHOCDF struct {
			Quantity float64 `json:"quantity"`
		} `json:"CHOCDF"`
		FAT struct {
			Quantity float64 `json:"quantity"`
		} `json:"FAT"`
		PROCNT struct {
			Quantity float64 `json:"quantity"`
		} `json:"PROCNT"`
	} `json:"totalNutrients"`
}

// Lookup fetches macros for "<grams> grams of <name>".
func (c *HTTPClient) Lookup(ctx context.Context, name string, grams uint) (Nutrients, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("ingr", fmt.Sprintf("%s %d grams", name, grams))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Nutrients{}, fmt.Errorf("build nutrition request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Nutrients{}, fmt.Errorf("%w: nutrition api: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Nutrients{}, fmt.Errorf("%w: nutrition api status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Nutrients{}, fmt.Errorf("%w: decode nutrition response: %v", apperrors.ErrExternalService, err)
	}

	return Nutrients{
		Kcal:     roundToUint(body.Calories),
		CarbG:    roundToUint(body.TotalNutrients.CHOCDF.Quantity),
		FatG:     roundToUint(body.TotalNutrients.FAT.Quantity),
		ProteinG: roundToUint(body.TotalNutrients.PROCNT.Quantity),
	}, nil
}

func roundToUint(v float64) uint {
	if v <= 0 {
		return 0
	}
	return uint(math.Round(v))
}
