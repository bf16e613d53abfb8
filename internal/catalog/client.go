// Package catalog talks to the external user/product API. The catalog owns
// user and product records; this service only ever reads them and copies
// fields into cart items at add time.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var (
	// ErrNotFound indicates the catalog has no record with the given id.
	ErrNotFound = errors.New("catalog record not found")

	// ErrUnavailable indicates the catalog could not be reached or answered
	// with an unexpected status. It is never a statement about record absence.
	ErrUnavailable = errors.New("catalog request failed")
)

// User is a catalog user record.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Product is a catalog product record.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// Client fetches users and products from a fakestore-style API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchUser returns the user with the given id, or ErrNotFound.
func (c *Client) FetchUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.fetch(ctx, fmt.Sprintf("%s/users/%d", c.baseURL, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchProduct returns the product with the given id, or ErrNotFound.
func (c *Client) FetchProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.fetch(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("catalog request %s: %v", url, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("catalog request %s: status %d", url, resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	// The upstream API answers 200 with an empty or literal null body for ids
	// it does not know.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrNotFound
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnavailable, err)
	}
	return nil
}
