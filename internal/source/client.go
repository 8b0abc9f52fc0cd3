package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/gallery/internal/model"
)

// LoadFailedMessage is the user-facing text for any fetch failure.
const LoadFailedMessage = "Failed to load items. Please try again later."

// ErrLoad is the single failure every fetch collapses to.
var ErrLoad = errors.New(LoadFailedMessage)

// LoadError is returned by Fetch. Its message is always LoadFailedMessage;
// Cause is kept for logs and errors.Is checks only.
type LoadError struct {
	Category model.Category
	Cause    error
}

func (e *LoadError) Error() string { return LoadFailedMessage }

// Unwrap exposes both ErrLoad and the cause.
func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Cause} }

const defaultTimeout = 15 * time.Second

// maxBodyBytes caps the size of a category document.
const maxBodyBytes = 32 << 20

// DefaultURLs maps each category to its hosted JSON document.
var DefaultURLs = map[model.Category]string{
	model.CategoryComic: "https://gallery.example.com/data/comics.json",
	model.CategoryArt:   "https://gallery.example.com/data/art.json",
	model.CategoryNFT:   "https://gallery.example.com/data/nfts.json",
	model.CategoryToken: "https://gallery.example.com/data/tokens.json",
}

// Fetcher loads the item list of a category.
type Fetcher interface {
	Fetch(ctx context.Context, category model.Category) ([]model.Item, error)
}

// Client fetches category documents over HTTP or from local files.
type Client struct {
	urls       map[model.Category]string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientParams holds parameters for creating a new Client.
type ClientParams struct {
	URLs    map[string]string // optional per-category overrides keyed by category name
	Timeout time.Duration     // optional, defaults to 15s
	Logger  *zap.Logger       // optional
}

// NewClient creates a Client using the default URLs plus any overrides.
func NewClient(params ClientParams) (*Client, error) {
	urls := make(map[model.Category]string, len(DefaultURLs))
	for c, u := range DefaultURLs {
		urls[c] = u
	}
	for name, u := range params.URLs {
		c, err := model.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("source override: %w", err)
		}
		if strings.TrimSpace(u) != "" {
			urls[c] = u
		}
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		urls:       urls,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// URL returns the resource location of a category.
func (c *Client) URL(category model.Category) string {
	return c.urls[category]
}

// Fetch loads and decodes the item list of category. Any failure is
// returned as a *LoadError.
func (c *Client) Fetch(ctx context.Context, category model.Category) ([]model.Item, error) {
	location, ok := c.urls[category]
	if !ok {
		return nil, c.fail(category, location, model.ErrUnknownCategory)
	}

	start := time.Now()
	body, err := c.read(ctx, location)
	if err != nil {
		return nil, c.fail(category, location, err)
	}

	var items []model.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, c.fail(category, location, fmt.Errorf("decode: %w", err))
	}
	if items == nil {
		items = []model.Item{}
	}

	c.logger.Info("fetched category",
		zap.String("category", category.String()),
		zap.String("url", location),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return model.EnsureIDs(items), nil
}

func (c *Client) fail(category model.Category, location string, cause error) error {
	if errors.Is(cause, context.Canceled) {
		c.logger.Debug("fetch cancelled",
			zap.String("category", category.String()),
			zap.String("url", location),
		)
	} else {
		c.logger.Warn("fetch failed",
			zap.String("category", category.String()),
			zap.String("url", location),
			zap.Error(cause),
		)
	}
	return &LoadError{Category: category, Cause: cause}
}

// read returns the raw document at location. Local paths and file:// URLs
// are read from disk.
func (c *Client) read(ctx context.Context, location string) ([]byte, error) {
	if path, ok := localPath(location); ok {
		return os.ReadFile(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// localPath reports whether location refers to the local filesystem.
func localPath(location string) (string, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return location, true
	}
	switch u.Scheme {
	case "http", "https":
		return "", false
	case "file":
		return u.Path, true
	default:
		return location, true
	}
}
