package mensa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Package mensa talks to the canteen's GraphQL backend. It is a thin
// transport: it sends the menuItems query and decodes the typed response,
// nothing else. All failures surface as plain errors to the caller.

// DefaultURL is the production GraphQL endpoint of the canteen backend.
const DefaultURL = "https://mensa.k8s.incloud.de/graphql"

const authorizationHeader = "openmensa-parser"

// DishType is the backend's closed dish classification enum.
type DishType string

const (
	DishVegan    DishType = "VEGAN"
	DishMeatless DishType = "MEATLESS"
	DishPork     DishType = "PORK"
	DishPoultry  DishType = "POULTRY"
	DishFish     DishType = "FISH"
	DishBeef     DishType = "BEEF"
)

// Dish is a single offered dish as returned by the backend.
type Dish struct {
	Name              string   `json:"name"`
	Type              DishType `json:"type"`
	Allergics         []string `json:"allergics"`
	SpecificAllergics []string `json:"specificAllergics"`
	Additionals       []string `json:"additionals"`
	StudentPrice      float64  `json:"studentPrice"`
	GuestPrice        float64  `json:"guestPrice"`
}

// MenuItem is a dish offered on a specific date (unix seconds, UTC).
type MenuItem struct {
	Date int64 `json:"date"`
	Dish Dish  `json:"dish"`
}

const menuItemsQuery = `query MenuItems($canteenId: ID!, $lang: Language!, $minDate: Date, $maxDate: Date) {
  menuItems(canteenId: $canteenId, lang: $lang, minDate: $minDate, maxDate: $maxDate) {
    date
    dish {
      name
      type
      allergics
      specificAllergics
      additionals
      studentPrice
      guestPrice
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type menuItemsResponse struct {
	Data *struct {
		MenuItems []MenuItem `json:"menuItems"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Client queries the canteen backend over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a client for the given GraphQL endpoint. An empty url
// selects DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, http: &http.Client{Timeout: 30 * time.Second}}
}

// MenuItems fetches all menu items of a canteen within [minDate, maxDate]
// (dates as "YYYY-MM-DD", either bound may be nil for an open range).
func (c *Client) MenuItems(ctx context.Context, canteenID string, minDate, maxDate *string) ([]MenuItem, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: menuItemsQuery,
		Variables: map[string]any{
			"canteenId": canteenID,
			"lang":      "DE",
			"minDate":   minDate,
			"maxDate":   maxDate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mensa: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mensa: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorizationHeader)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mensa: send query: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("mensa: unexpected status %s", res.Status)
	}

	var envelope menuItemsResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("mensa: decode response: %w", err)
	}
	if envelope.Data != nil {
		return envelope.Data.MenuItems, nil
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("mensa: graphql errors: %s", strings.Join(msgs, ", "))
	}
	return nil, fmt.Errorf("mensa: graphql response with neither data nor errors")
}
