package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned by Delete when the service has no such blob.
var ErrNotFound = errors.New("blob service: not found")

// Client talks to the blob upload service: multipart POST returns {"url": ...},
// DELETE ?url=... removes a blob.
type Client struct {
	baseURL    string
	httpClient *http.Client
	field      string
}

// Option configures the Client.
type Option func(*Client)

// WithFormField overrides the multipart field name, "file" by default.
func WithFormField(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.field = name
		}
	}
}

// NewClient instantiates the blob client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("blob service base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("blob service base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{baseURL: baseURL, httpClient: httpClient, field: "file"}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Upload posts one payload and returns the stable retrieval URL.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("blob client not configured")
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, c.field, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call blob service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("blob service error: %s", errorMessage(resp))
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode blob service response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("blob service returned an empty url")
	}
	return out.URL, nil
}

// Delete removes a previously uploaded blob.
func (c *Client) Delete(ctx context.Context, blobURL string) error {
	if c == nil || c.httpClient == nil {
		return errors.New("blob client not configured")
	}
	endpoint := c.baseURL + "?" + url.Values{"url": {blobURL}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call blob service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return fmt.Errorf("blob service error: %s", errorMessage(resp))
	}
}

func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body errorResponse
	if json.Unmarshal(raw, &body) == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	return resp.Status
}
