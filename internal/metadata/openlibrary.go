package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// BookSuggestion is a lookup candidate offered to the add-book form.
type BookSuggestion struct {
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	TotalPages int    `json:"total_pages,omitempty"`
	CoverImage string `json:"cover_image,omitempty"`
}

// OpenLibraryClient fetches book suggestions from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	coverURL    string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient() *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://openlibrary.org",
		coverURL:    "https://covers.openlibrary.org",
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

type searchDoc struct {
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	CoverID             int      `json:"cover_i"`
}

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// Search looks up books by title, optionally narrowed by author, and
// returns up to five candidates for the add-book form.
func (c *OpenLibraryClient) Search(ctx context.Context, title, author string) ([]BookSuggestion, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	c.rateLimiter.wait()

	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("limit", "5")
	params.Set("fields", "title,author_name,number_of_pages_median,cover_i")

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Bookend/1.0 (https://github.com/bookend/bookend)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var results searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	suggestions := make([]BookSuggestion, 0, len(results.Docs))
	for _, doc := range results.Docs {
		s := BookSuggestion{
			Title:      doc.Title,
			TotalPages: doc.NumberOfPagesMedian,
		}
		if len(doc.AuthorName) > 0 {
			s.Author = doc.AuthorName[0]
		}
		if doc.CoverID > 0 {
			s.CoverImage = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coverURL, doc.CoverID)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}
