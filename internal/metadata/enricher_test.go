package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookend/bookend/internal/entities"
)

type fakeProvider struct {
	suggestions []BookSuggestion
	err         error
	calls       int
}

func (f *fakeProvider) Search(_ context.Context, _, _ string) ([]BookSuggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

type fakeBookStore struct {
	book *entities.Book

	updatedID    uint
	updatedPages int
	updatedCover string
	updateCalls  int
}

func (f *fakeBookStore) GetByID(_ uint) (*entities.Book, error) {
	if f.book == nil {
		return nil, errors.New("not found")
	}
	return f.book, nil
}

func (f *fakeBookStore) UpdateLookupFields(id uint, totalPages int, coverImage string) error {
	f.updateCalls++
	f.updatedID = id
	f.updatedPages = totalPages
	f.updatedCover = coverImage
	return nil
}

func TestEnricher_FillsMissingFields(t *testing.T) {
	store := &fakeBookStore{book: &entities.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}}
	provider := &fakeProvider{suggestions: []BookSuggestion{
		{Title: "Dune", TotalPages: 412, CoverImage: "https://covers.example.org/dune.jpg"},
	}}

	updated, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"total_pages", "cover_image"}, updated)
	assert.Equal(t, uint(1), store.updatedID)
	assert.Equal(t, 412, store.updatedPages)
	assert.Equal(t, "https://covers.example.org/dune.jpg", store.updatedCover)
}

func TestEnricher_LeavesUserValuesAlone(t *testing.T) {
	store := &fakeBookStore{book: &entities.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", TotalPages: 400}}
	provider := &fakeProvider{suggestions: []BookSuggestion{
		{Title: "Dune", TotalPages: 412, CoverImage: "https://covers.example.org/dune.jpg"},
	}}

	updated, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"cover_image"}, updated)
	// The user's page count survives; only the cover was filled.
	assert.Zero(t, store.updatedPages)
	assert.Equal(t, "https://covers.example.org/dune.jpg", store.updatedCover)
}

func TestEnricher_SkipsCompleteBooks(t *testing.T) {
	store := &fakeBookStore{book: &entities.Book{
		ID: 1, Title: "Dune", Author: "Frank Herbert",
		TotalPages: 412, CoverImage: "https://covers.example.org/dune.jpg",
	}}
	provider := &fakeProvider{}

	updated, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Zero(t, provider.calls)
	assert.Zero(t, store.updateCalls)
}

func TestEnricher_NoSuggestions(t *testing.T) {
	store := &fakeBookStore{book: &entities.Book{ID: 1, Title: "Obscure", Author: "Nobody"}}
	provider := &fakeProvider{}

	updated, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Zero(t, store.updateCalls)
}

func TestEnricher_ProviderError(t *testing.T) {
	store := &fakeBookStore{book: &entities.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}}
	provider := &fakeProvider{err: errors.New("rate limited")}

	_, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
	assert.Error(t, err)
	assert.Zero(t, store.updateCalls)
}
