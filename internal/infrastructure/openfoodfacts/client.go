// Package openfoodfacts is a thin read-only client for the Open Food Facts
// product database, used to prefill inventory items from barcodes.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type productResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Product struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		Categories      string `json:"categories"`
		Quantity        string `json:"quantity"`
		ImageURL        string `json:"image_url"`
		NutriscoreGrade string `json:"nutriscore_grade"`
	} `json:"product"`
}

// Lookup fetches a product by barcode. Unknown barcodes map to ErrNotFound.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open food facts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %s: %w", barcode, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts returned status %d", resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	if pr.Status != 1 || pr.Product.ProductName == "" {
		return nil, fmt.Errorf("product %s: %w", barcode, domain.ErrNotFound)
	}

	return &domain.Product{
		Barcode:    barcode,
		Name:       pr.Product.ProductName,
		Brand:      firstCSV(pr.Product.Brands),
		Category:   firstCSV(pr.Product.Categories),
		Quantity:   pr.Product.Quantity,
		ImageURL:   pr.Product.ImageURL,
		Nutriscore: pr.Product.NutriscoreGrade,
	}, nil
}

// firstCSV returns the first entry of a comma-separated OFF field.
func firstCSV(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
