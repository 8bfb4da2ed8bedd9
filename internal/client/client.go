// Package client 是 inventory-hub REST API 的 Go 用戶端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"inventory-hub/internal/api"
	"inventory-hub/internal/model"
)

// APIError 對應伺服器回傳的非 2xx 回應
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithHTTPClient 替換底層 http.Client（測試用 httptest server 的 client）
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	const maxBodyBytes = 4 << 20
	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e api.ErrorResponse
		if json.Unmarshal(respBytes, &e) != nil || e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// Login 成功後保存 sessionToken，之後的請求自動帶上 Bearer
func (c *Client) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	var out api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", api.CredentialsRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.SessionToken)
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/signup", api.CredentialsRequest{Username: username, Password: password}, nil)
}

// Logout 撤銷目前的 token；伺服器回應成功才清除本地 token
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", api.LogoutRequest{SessionToken: c.Token()}, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/product", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p model.Product) (int, error) {
	price, quantity := p.Price, p.Quantity
	var out api.CreateProductResponse
	err := c.do(ctx, http.MethodPost, "/api/product", api.CreateProductRequest{
		Name:     p.Name,
		Category: p.Category,
		Price:    &price,
		Quantity: &quantity,
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) AdjustQuantity(ctx context.Context, name string, change model.ChangeType, amount int) (int, error) {
	var out api.AdjustQuantityResponse
	err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(name)+"/quantity", api.AdjustQuantityRequest{
		ChangeType:     string(change),
		QuantityChange: api.NumberArg(strconv.Itoa(amount)),
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.NewQuantity, nil
}

func (c *Client) DeleteProduct(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/product/"+url.PathEscape(name), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	var out []model.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, username, password string) (int, error) {
	var out api.CreateUserResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", api.CredentialsRequest{Username: username, Password: password}, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, username, password string) error {
	return c.do(ctx, http.MethodPut, "/api/users/"+strconv.Itoa(id), api.CredentialsRequest{Username: username, Password: password}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+strconv.Itoa(id), nil, nil)
}
