package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// ErrNoToken is returned by operator calls before a bar is registered
var ErrNoToken = errors.New("no operator token, register a bar or set DRINKINGMAN_TOKEN")

// ApiClient handles requests to the DrinkingMan API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewApiClient creates a client from DRINKINGMAN_API_URL and DRINKINGMAN_TOKEN
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("DRINKINGMAN_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &ApiClient{
		// recommendations wait on the language model
		httpClient: &http.Client{Timeout: 90 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      os.Getenv("DRINKINGMAN_TOKEN"),
	}
}

// Bar is a registered bar
type Bar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ingredient is one inventory entry
type Ingredient struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// CategoryGroup is the inventory of one category
type CategoryGroup struct {
	Category string       `json:"category"`
	Items    []Ingredient `json:"items"`
}

// BarState is the operator view of a bar
type BarState struct {
	Bar         Bar             `json:"bar"`
	Groups      []CategoryGroup `json:"groups"`
	Unavailable []string        `json:"unavailable"`
}

// Suggestion is a DrinkingMan recommendation
type Suggestion struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	WhyItFits    string   `json:"whyItFits"`
	History      string   `json:"history,omitempty"`
	FunFact      string   `json:"funFact,omitempty"`
}

// Sliders are the three flavor preferences, each in [0,100]
type Sliders struct {
	SweetBitter     int `json:"sweetBitter"`
	SmoothStrong    int `json:"smoothStrong"`
	RefreshingHeavy int `json:"refreshingHeavy"`
}

// RecommendationRequest asks DrinkingMan for a drink
type RecommendationRequest struct {
	Locale     string  `json:"locale"`
	BaseSpirit string  `json:"baseSpirit"`
	Sliders    Sliders `json:"sliders"`
	Mood       string  `json:"mood"`
	Occasion   string  `json:"occasion"`
	BarID      string  `json:"barId,omitempty"`
}

// RecommendationResponse wraps a suggestion, which is nil when none came back
type RecommendationResponse struct {
	Suggestion  *Suggestion `json:"suggestion"`
	Images      []string    `json:"images"`
	BarName     string      `json:"barName"`
	FlavorTags  []string    `json:"flavorTags"`
	Unavailable []string    `json:"unavailable"`
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}
	return true, nil
}

// RegisterBar creates a bar and keeps its operator token
func (c *ApiClient) RegisterBar(name string) (*Bar, error) {
	var resp struct {
		Bar   Bar    `json:"bar"`
		Token string `json:"token"`
	}
	if err := c.do(http.MethodPost, "/api/v1/bars", false, map[string]string{"name": name}, http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp.Bar, nil
}

// GetBar retrieves the bar name and grouped inventory
func (c *ApiClient) GetBar() (*BarState, error) {
	var state BarState
	if err := c.do(http.MethodGet, "/api/v1/bar", true, nil, http.StatusOK, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SetBarName renames the bar
func (c *ApiClient) SetBarName(name string) (*Bar, error) {
	var bar Bar
	if err := c.do(http.MethodPut, "/api/v1/bar/name", true, map[string]string{"name": name}, http.StatusOK, &bar); err != nil {
		return nil, err
	}
	return &bar, nil
}

// Toggle flips the availability of an ingredient
func (c *ApiClient) Toggle(name string) (*Ingredient, error) {
	var item Ingredient
	path := "/api/v1/bar/inventory/" + url.PathEscape(name) + "/toggle"
	if err := c.do(http.MethodPost, path, true, nil, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Reset restores the default inventory
func (c *ApiClient) Reset() (*BarState, error) {
	var state BarState
	if err := c.do(http.MethodPost, "/api/v1/bar/inventory/reset", true, nil, http.StatusOK, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ShareLink returns the guest menu link of the bar
func (c *ApiClient) ShareLink() (string, error) {
	var resp struct {
		Link string `json:"link"`
	}
	if err := c.do(http.MethodGet, "/api/v1/bar/link", true, nil, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Link, nil
}

// Recommend asks DrinkingMan for a drink
func (c *ApiClient) Recommend(req RecommendationRequest) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	if err := c.do(http.MethodPost, "/api/v1/recommendations", false, req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ApiClient) do(method, path string, auth bool, body interface{}, want int, out interface{}) error {
	if auth && c.Token == "" {
		return ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status code %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
