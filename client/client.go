// Package client is a typed HTTP client for the Pixel Cat Calories API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/entity"
)

const defaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

func (c *Client) base() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		// uploads wait on food detection, which can take a while
		return &http.Client{Timeout: 2 * time.Minute}
	}
	return c.HTTPClient
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e entity.ErrorResponse
		if json.Unmarshal(body, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(body))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base()+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) Register(ctx context.Context, email, password string) (*entity.User, error) {
	var u entity.User
	err := c.doJSON(ctx, http.MethodPost, "/api/user/register", entity.RegisterRequest{Email: email, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*entity.LoginResponse, error) {
	var resp entity.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", entity.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

func (c *Client) Onboard(ctx context.Context, req entity.OnboardRequest) (*entity.ProfileResponse, error) {
	var resp entity.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/onboard", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*entity.ProfileResponse, error) {
	var resp entity.ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatsResponse is the profile plus whatever the update unlocked.
type StatsResponse struct {
	entity.ProfileResponse
	UnlockedCats []entity.Cat `json:"unlockedCats"`
}

func (c *Client) UpdateStats(ctx context.Context, weightKg float64, goals []string) (*StatsResponse, error) {
	var resp StatsResponse
	err := c.doJSON(ctx, http.MethodPut, "/api/user/profile/update-stats", entity.UpdateStatsRequest{WeightKg: weightKg, Goals: goals}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetActiveCat(ctx context.Context, catID string) (*entity.ProfileResponse, error) {
	var resp entity.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/user/profile", entity.SetActiveCatRequest{ActiveCatID: catID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Cats(ctx context.Context) ([]entity.Cat, error) {
	var cats []entity.Cat
	if err := c.doJSON(ctx, http.MethodGet, "/api/cats", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) FoodLogs(ctx context.Context, limit int) ([]entity.FoodLog, error) {
	path := "/api/food/logs"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var logs []entity.FoodLog
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UploadFood sends a meal photo as the foodImage form field.
func (c *Client) UploadFood(ctx context.Context, filename string, img io.Reader) (*entity.FoodUploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="foodImage"; filename=%q`, filepath.Base(filename))},
		"Content-Type":        {imageContentType(filename)},
	})
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, img); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base()+"/api/food/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp entity.FoodUploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func imageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
