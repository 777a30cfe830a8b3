package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/httpx"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Config struct {
	Key          string        `yaml:"key"`
	Token        string        `yaml:"token"`
	BaseURL      string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries" validate:"gte=0,lte=5"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Key) != "" && strings.TrimSpace(c.Token) != ""
}

type Card struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	URL              string     `json:"url"`
	ShortURL         string     `json:"shortUrl"`
	ListID           string     `json:"idList"`
	Due              *time.Time `json:"due"`
	DateLastActivity *time.Time `json:"dateLastActivity"`
}

type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.Key = strings.TrimSpace(cfg.Key)
	cfg.Token = strings.TrimSpace(cfg.Token)
	if !cfg.Configured() {
		return nil, fmt.Errorf("missing trello key or token")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.trello.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &Client{
		log:        log.With("client", "TrelloClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

var boardPath = regexp.MustCompile(`^/b/([A-Za-z0-9]+)(?:/|$)`)

// BoardIDFromURL extracts the short board id from
// https://trello.com/b/<id>/<slug>.
func BoardIDFromURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse board url: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "trello.com" {
		return "", fmt.Errorf("not a trello board url: %q", raw)
	}
	m := boardPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", fmt.Errorf("no board id in %q", raw)
	}
	return m[1], nil
}

// OpenCards lists the open cards on the board behind boardURL.
func (c *Client) OpenCards(ctx context.Context, boardURL string) ([]Card, error) {
	boardID, err := BoardIDFromURL(boardURL)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/1/boards/%s/cards/open", c.cfg.BaseURL, url.PathEscape(boardID))

	backoff := c.cfg.RetryBackoff
	for attempt := 0; ; attempt++ {
		cards, resp, err := c.getCards(ctx, endpoint)
		if err == nil {
			return cards, nil
		}
		if !httpx.IsRetryableError(err) || attempt >= c.cfg.MaxRetries {
			return nil, err
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		c.log.Warn("Trello request retrying",
			"board", boardID,
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
}

func (c *Client) authHeader() string {
	return fmt.Sprintf(`OAuth oauth_consumer_key="%s", oauth_token="%s"`, c.cfg.Key, c.cfg.Token)
}

func (c *Client) getCards(ctx context.Context, endpoint string) ([]Card, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	// Credentials stay out of the URL so transport errors never carry them.
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, resp, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, resp, &httpx.StatusError{
			Op:     "trello open cards",
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	var cards []Card
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, resp, fmt.Errorf("decode trello cards: %w", err)
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, resp, nil
}
