package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds outbound calls when no timeout is configured.
const DefaultTimeout = 30 * time.Second

func newClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "mediabox/1.0")
}

// BibleClient looks verses up on a bible-api.com compatible service.
type BibleClient struct {
	client *resty.Client
}

func NewBibleClient(baseURL string, timeout time.Duration) *BibleClient {
	return &BibleClient{client: newClient(baseURL, timeout)}
}

type bibleResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// Verse returns the text of a reference such as "John 3:16".
func (c *BibleClient) Verse(ctx context.Context, verse string) (string, error) {
	var out bibleResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("verse", strings.TrimSpace(verse)).
		SetResult(&out).
		Get("/{verse}")
	if err != nil {
		return "", fmt.Errorf("bible lookup: %w", err)
	}
	if err := parseHTTPError("bible", resp); err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", fmt.Errorf("bible lookup: no text for %q", verse)
	}
	return text, nil
}

// Shortener creates short links through the TinyURL create endpoint.
type Shortener struct {
	client *resty.Client
}

func NewShortener(endpoint string, timeout time.Duration) *Shortener {
	return &Shortener{client: newClient(endpoint, timeout)}
}

// Shorten returns the short URL for long.
func (s *Shortener) Shorten(ctx context.Context, long string) (string, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(long))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", long)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("url", u.String()).
		Get("")
	if err != nil {
		return "", fmt.Errorf("shorten url: %w", err)
	}
	if err := parseHTTPError("tinyurl", resp); err != nil {
		return "", err
	}
	short := strings.TrimSpace(resp.String())
	if !strings.HasPrefix(short, "http") {
		return "", fmt.Errorf("shorten url: unexpected response %q", short)
	}
	return short, nil
}

// ErrNoAPIKey is returned by BackgroundRemover when no key is configured.
var ErrNoAPIKey = errors.New("remove.bg API key is not configured")

// BackgroundRemover calls the remove.bg API.
type BackgroundRemover struct {
	client *resty.Client
	apiKey string
}

func NewBackgroundRemover(endpoint, apiKey string, timeout time.Duration) *BackgroundRemover {
	return &BackgroundRemover{client: newClient(endpoint, timeout), apiKey: apiKey}
}

// RemoveBackground returns image as a PNG with its background made transparent.
func (b *BackgroundRemover) RemoveBackground(ctx context.Context, image []byte) ([]byte, error) {
	if b.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", b.apiKey).
		SetHeader("Accept", "image/png").
		SetFileReader("image_file", "image", bytes.NewReader(image)).
		SetFormData(map[string]string{"size": "auto", "format": "png"}).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("remove background: %w", err)
	}
	if err := parseHTTPError("remove.bg", resp); err != nil {
		return nil, err
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("remove background: empty response")
	}
	return resp.Body(), nil
}
