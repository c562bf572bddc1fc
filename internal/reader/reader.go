// Package reader extracts the readable text of articles for the reader view.
package reader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/storage"
)

// Article is the readable form of a web page.
type Article struct {
	Title   string
	Byline  string
	Text    string
	Offline bool // served from an archived copy
}

// OfflineStore holds archived article text by link.
type OfflineStore interface {
	Put(link string, text []byte) error
	Get(link string) ([]byte, error)
	Delete(link string) error
}

// Options configures a Service.
type Options struct {
	Timeout   time.Duration
	CacheSize int
	Store     OfflineStore // optional
	Client    *http.Client // overrides Timeout when set
	Logger    logger.Logger
}

// Service fetches articles, keeping recent ones in memory.
type Service struct {
	client *http.Client
	cache  *lru.Cache[string, Article]
	store  OfflineStore
	log    logger.Logger
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	cache, _ := lru.New[string, Article](opts.CacheSize)
	return &Service{
		client: opts.Client,
		cache:  cache,
		store:  opts.Store,
		log:    opts.Logger,
	}
}

// Read returns the article behind link, preferring the cache and then
// the offline copy over the network.
func (s *Service) Read(ctx context.Context, link string) (Article, error) {
	if a, ok := s.cache.Get(link); ok {
		return a, nil
	}

	if s.store != nil {
		data, err := s.store.Get(link)
		switch {
		case err == nil:
			a := decodeOffline(data)
			s.cache.Add(link, a)
			return a, nil
		case !errors.Is(err, storage.ErrNoData):
			s.log.Warn("read offline copy", logger.String("link", link), logger.Error(err))
		}
	}

	a, err := s.fetch(ctx, link)
	if err != nil {
		return Article{}, err
	}
	s.cache.Add(link, a)
	return a, nil
}

// Archive stores an offline copy of the entry's article.
func (s *Service) Archive(ctx context.Context, e model.Entry) error {
	if s.store == nil {
		return nil
	}
	a, err := s.fetch(ctx, e.Link)
	if err != nil {
		return err
	}
	if a.Title == "" {
		a.Title = e.Title
	}
	if err := s.store.Put(e.Link, encodeOffline(a)); err != nil {
		return fmt.Errorf("store article: %w", err)
	}
	s.cache.Remove(e.Link)
	return nil
}

// Discard removes the offline copy of the entry's article.
func (s *Service) Discard(e model.Entry) error {
	s.cache.Remove(e.Link)
	if s.store == nil {
		return nil
	}
	return s.store.Delete(e.Link)
}

func (s *Service) fetch(ctx context.Context, link string) (Article, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Article{}, fmt.Errorf("invalid link %q: %w", link, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Article{}, err
	}
	req.Header.Set("User-Agent", "readme/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return Article{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	parser := readability.NewParser()
	parsed, err := parser.Parse(resp.Body, u)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}

	text := HTMLToText(parsed.Content)
	if text == "" {
		text = strings.TrimSpace(parsed.TextContent)
	}

	s.log.Debug("article fetched", logger.String("link", link), logger.Int("chars", len(text)))
	return Article{
		Title:  strings.TrimSpace(parsed.Title),
		Byline: strings.TrimSpace(parsed.Byline),
		Text:   text,
	}, nil
}

// Offline copies are stored as a title line, a byline line and the text.
func encodeOffline(a Article) []byte {
	return []byte(a.Title + "\n" + a.Byline + "\n" + a.Text)
}

func decodeOffline(data []byte) Article {
	parts := strings.SplitN(string(data), "\n", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return Article{Title: parts[0], Byline: parts[1], Text: parts[2], Offline: true}
}
