// Package culler checks whether the links of entries are still alive.
package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/readme/internal/model"
)

// Status represents the health status of a link.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single entry.
type Result struct {
	Entry      model.Entry
	Status     Status
	StatusCode int    // 0 if the connection failed
	Reason     string // why the link is unreachable
}

// ProgressFunc is called after each link is checked.
type ProgressFunc func(completed, total int)

// Options configures Check.
type Options struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string // 404s on these count as possibly private
	OnProgress     ProgressFunc
	Client         *http.Client // overrides Timeout when set
}

// Check checks all entry links concurrently.
// Results are in the order of entries.
func Check(ctx context.Context, entries []model.Entry, opts Options) []Result {
	if len(entries) == 0 {
		return nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	exclude := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(entries))
	jobs := make(chan int, len(entries))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkLink(ctx, opts.Client, entries[idx], exclude)

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(entries))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// DeadEntries returns the entries of results whose links are dead.
func DeadEntries(results []Result) []model.Entry {
	var dead []model.Entry
	for _, r := range results {
		if r.Status == Dead {
			dead = append(dead, r.Entry)
		}
	}
	return dead
}

func checkLink(ctx context.Context, client *http.Client, e model.Entry, exclude map[string]bool) Result {
	result := Result{Entry: e}

	// HEAD first, GET for servers that reject HEAD.
	resp, err := do(ctx, client, http.MethodHead, e.Link)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = do(ctx, client, http.MethodGet, e.Link)
		if err != nil {
			result.Status = Unreachable
			result.Reason = normalizeError(err)
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(e.Link, exclude) {
			result.Status = Unreachable
			result.Reason = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and friends may be temporary.
		result.Status = Unreachable
		result.Reason = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, link string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "readme/1.0")
	return client.Do(req)
}

// isExcludedDomain reports whether the link's host is, or is below, an excluded domain.
func isExcludedDomain(rawURL string, exclude map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError turns transport errors into short readable reasons.
func normalizeError(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return msg
	}
}
