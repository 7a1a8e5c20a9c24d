package newsfeed

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	dservice "MarketPulse/internal/domain/service"
	pkghttp "MarketPulse/pkg/http"
)

const defaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"

// Client implements NewsProvider over an RSS 2.0 headline feed.
type Client struct {
	feedURL   string
	userAgent string
	http      *pkghttp.Client
}

var _ dservice.NewsProvider = (*Client)(nil)

// Option configures Client.
type Option func(*Client)

// New creates an RSS news client.
func New(opts ...Option) *Client {
	c := &Client{
		feedURL:   defaultFeedURL,
		userAgent: "MarketPulse/1.0",
		http:      pkghttp.NewClient(pkghttp.WithTimeout(15 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFeedURL overrides the feed endpoint.
func WithFeedURL(u string) Option {
	return func(c *Client) { c.feedURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *pkghttp.Client) Option {
	return func(c *Client) { c.http = h }
}

type rssFeed struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Source      string `xml:"source"`
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// GetNews fetches up to limit articles for the ticker, in feed order.
// Descriptions are stripped of markup before they reach the sentiment
// engine.
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	var raw []byte
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.feedURL,
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"s":      {ticker},
			"region": {"US"},
			"lang":   {"en-US"},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("news feed %s: %w", ticker, err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("news feed %s: parse: %w", ticker, err)
	}

	items := feed.Channel.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		article := models.NewsArticle{
			Title:   cleanText(item.Title),
			Content: cleanText(item.Description),
			URL:     strings.TrimSpace(item.Link),
			Source:  strings.TrimSpace(item.Source),
		}
		if t, ok := parsePubDate(item.PubDate); ok {
			article.PublishedAt = t
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func cleanText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

func parsePubDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
