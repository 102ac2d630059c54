package metadata

import (
	"context"
	"fmt"

	"github.com/bookend/bookend/internal/entities"
)

// SuggestionProvider defines the interface for the external book lookup.
type SuggestionProvider interface {
	Search(ctx context.Context, title, author string) ([]BookSuggestion, error)
}

// BookStore is the subset of the book repository the enricher needs.
type BookStore interface {
	GetByID(id uint) (*entities.Book, error)
	UpdateLookupFields(id uint, totalPages int, coverImage string) error
}

// Enricher fills a book's missing total pages and cover image from the
// lookup service. It writes through the book repository's dedicated
// lookup-field path, so it can never touch the progress counter.
type Enricher struct {
	provider SuggestionProvider
	books    BookStore
}

// NewEnricher creates a new Enricher.
func NewEnricher(provider SuggestionProvider, books BookStore) *Enricher {
	return &Enricher{
		provider: provider,
		books:    books,
	}
}

// EnrichBook looks the book up by title and author and fills whichever
// of totalPages/coverImage the user left empty. Fields the user already
// set are left alone. Returns the names of the updated fields.
func (e *Enricher) EnrichBook(ctx context.Context, bookID uint) ([]string, error) {
	book, err := e.books.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book.TotalPages > 0 && book.CoverImage != "" {
		return nil, nil
	}

	suggestions, err := e.provider.Search(ctx, book.Title, book.Author)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", book.Title, err)
	}
	if len(suggestions) == 0 {
		return nil, nil
	}
	best := suggestions[0]

	var updated []string
	totalPages := 0
	coverImage := ""
	if book.TotalPages == 0 && best.TotalPages > 0 {
		totalPages = best.TotalPages
		updated = append(updated, "total_pages")
	}
	if book.CoverImage == "" && best.CoverImage != "" {
		coverImage = best.CoverImage
		updated = append(updated, "cover_image")
	}
	if len(updated) == 0 {
		return nil, nil
	}

	if err := e.books.UpdateLookupFields(bookID, totalPages, coverImage); err != nil {
		return nil, err
	}
	return updated, nil
}
