package ingest

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrFeedFetch marks a transient feed failure. The caller may retry the
// whole run; nothing is committed past the point of failure.
var ErrFeedFetch = errors.New("feed fetch failed")

// Entry is one raw item from a player's checkin feed.
type Entry struct {
	Title       string
	Link        string
	Published   time.Time
	Description string
}

// FeedSource produces a finite, restartable sequence of raw entries for
// a player's feed reference.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) ([]Entry, error)
}

const fetchTimeout = 15 * time.Second

// RSSFeedSource reads an untappd RSS feed over HTTP.
type RSSFeedSource struct {
	client *http.Client
	logger *zap.Logger
}

func NewRSSFeedSource(logger *zap.Logger) *RSSFeedSource {
	return &RSSFeedSource{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

func (s *RSSFeedSource) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrFeedFetch, resp.StatusCode, feedURL)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	entries := make([]Entry, 0, len(doc.Channel.Items))

	for _, item := range doc.Channel.Items {
		// Example: Wed, 02 Dec 2015 00:45:37 +0000
		published, err := time.Parse(time.RFC1123Z, item.PubDate)
		if err != nil {
			if published, err = time.Parse(time.RFC1123, item.PubDate); err != nil {
				s.logger.Info("skipping entry with unparseable date",
					zap.String("title", item.Title), zap.String("date", item.PubDate))

				continue
			}
		}

		entries = append(entries, Entry{
			Title:       item.Title,
			Link:        item.Link,
			Published:   published,
			Description: item.Description,
		})
	}

	return entries, nil
}
