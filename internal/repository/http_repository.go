package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

const productsPath = "/api/products"

// HTTPProductRepository reads and mutates the products collection over REST.
type HTTPProductRepository struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProductRepository creates a repository for the backend at baseURL.
// A zero timeout leaves requests bounded only by their context.
func NewHTTPProductRepository(baseURL string, timeout time.Duration) *HTTPProductRepository {
	return &HTTPProductRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (r *HTTPProductRepository) WithHTTPClient(c *http.Client) *HTTPProductRepository {
	r.httpClient = c
	return r
}

// GetAll fetches GET /api/products, keeping the server's order
func (r *HTTPProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	resp, err := r.do(ctx, http.MethodGet, r.collectionURL(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode product list: %v", ErrTransport, err)
	}
	// A null body is not an empty collection
	if products == nil {
		return nil, fmt.Errorf("%w: product list is null", ErrTransport)
	}
	return products, nil
}

// Create sends POST /api/products. The response body is not consumed beyond the status.
func (r *HTTPProductRepository) Create(ctx context.Context, input models.ProductInput) error {
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("%w: marshal product: %v", ErrTransport, err)
	}

	resp, err := r.do(ctx, http.MethodPost, r.collectionURL(), payload)
	if err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

// Delete sends DELETE /api/products/{id}
func (r *HTTPProductRepository) Delete(ctx context.Context, id models.ProductID) error {
	resp, err := r.do(ctx, http.MethodDelete, r.collectionURL()+"/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

func (r *HTTPProductRepository) collectionURL() string {
	return r.baseURL + productsPath
}

// do performs the request and converts non-2xx answers into a StatusError.
// On success the caller owns resp.Body.
func (r *HTTPProductRepository) do(ctx context.Context, method, reqURL string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s request: %v", ErrTransport, method, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, reqURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		statusErr := &StatusError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
		}
		// Best effort: the backend reports problems as {"error": "..."}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errResp) == nil {
			statusErr.Message = errResp.Error
		}
		return nil, statusErr
	}

	return resp, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
