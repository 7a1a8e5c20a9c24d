package newsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>MSFT Headlines</title>
    <item>
      <title>Profits surge on record quarter</title>
      <description><![CDATA[<p>Earnings &amp; revenue beat guidance.</p>]]></description>
      <link>https://example.com/a</link>
      <pubDate>Mon, 02 Jun 2025 14:30:00 +0000</pubDate>
      <source>Example Wire</source>
    </item>
    <item>
      <title>Shares slip in late trading</title>
      <description>Mild pullback after the rally.</description>
      <link>https://example.com/b</link>
      <pubDate>not a date</pubDate>
    </item>
    <item>
      <title>Third headline</title>
      <link>https://example.com/c</link>
    </item>
  </channel>
</rss>`

func TestGetNews(t *testing.T) {
	var gotTicker string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTicker = r.URL.Query().Get("s")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	c := New(WithFeedURL(srv.URL))
	articles, err := c.GetNews(context.Background(), "MSFT", 2)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if gotTicker != "MSFT" {
		t.Errorf("ticker query = %q", gotTicker)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want limit 2", len(articles))
	}

	first := articles[0]
	if first.Title != "Profits surge on record quarter" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Content != "Earnings & revenue beat guidance." {
		t.Errorf("Content = %q, want markup stripped and entities decoded", first.Content)
	}
	if first.Source != "Example Wire" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.PublishedAt.IsZero() {
		t.Error("PublishedAt not parsed")
	}

	if !articles[1].PublishedAt.IsZero() {
		t.Errorf("unparseable pubDate should leave zero time, got %v", articles[1].PublishedAt)
	}
}

func TestGetNewsBadXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not xml}"))
	}))
	defer srv.Close()

	c := New(WithFeedURL(srv.URL))
	if _, err := c.GetNews(context.Background(), "MSFT", 5); err == nil {
		t.Fatal("expected parse error")
	}
}
