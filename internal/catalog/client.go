package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"drinkingman/internal/models"
)

const maxResponseBytes = 4 << 20

// Client talks to the third-party cocktail lookup service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client. timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchByName returns cocktails whose name matches
func (c *Client) SearchByName(ctx context.Context, name string) ([]models.Cocktail, error) {
	return c.get(ctx, "search.php", url.Values{"s": {name}})
}

// FilterByCategory returns summaries of cocktails in a category
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]models.Cocktail, error) {
	return c.get(ctx, "filter.php", url.Values{"c": {category}})
}

// FilterByIngredient returns summaries of cocktails using an ingredient
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]models.Cocktail, error) {
	return c.get(ctx, "filter.php", url.Values{"i": {ingredient}})
}

// FilterByAlcoholic returns summaries of cocktails with an alcoholic flag
func (c *Client) FilterByAlcoholic(ctx context.Context, alcoholic string) ([]models.Cocktail, error) {
	return c.get(ctx, "filter.php", url.Values{"a": {alcoholic}})
}

// LookupByID returns the full record, or nil when the id is unknown
func (c *Client) LookupByID(ctx context.Context, id string) (*models.Cocktail, error) {
	return first(c.get(ctx, "lookup.php", url.Values{"i": {id}}))
}

// Random returns one random full record
func (c *Client) Random(ctx context.Context) (*models.Cocktail, error) {
	return first(c.get(ctx, "random.php", nil))
}

func first(drinks []models.Cocktail, err error) (*models.Cocktail, error) {
	if err != nil || len(drinks) == 0 {
		return nil, err
	}
	return &drinks[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]models.Cocktail, error) {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read lookup response: %w", err)
	}
	return decodeDrinks(body)
}
