// Package books provides database operations for the book library.
//
// This package implements the BookStore interface defined in
// internal/http/books.go.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.Create(&entities.Book{Title: "Dune", Author: "Frank Herbert"})
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bookend/bookend/internal/database/dberrors"
	"github.com/bookend/bookend/internal/entities"
)

// Repository handles all book table operations. It never adjusts the
// derived progress counter on its own; that is the session ledger's job.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. The progress counter always starts at zero
// regardless of caller input; only recorded sessions advance it.
func (r *Repository) Create(book *entities.Book) (uint, error) {
	if strings.TrimSpace(book.Title) == "" || strings.TrimSpace(book.Author) == "" {
		return 0, fmt.Errorf("title and author are required: %w", dberrors.ErrInvalidValue)
	}

	book.ID = 0
	book.CurrentPage = 0
	if err := r.db.Create(book).Error; err != nil {
		return 0, dberrors.Storage(err)
	}
	return book.ID, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, dberrors.ErrNotFound)
		}
		return nil, dberrors.Storage(err)
	}
	return &book, nil
}

// Update replaces all mutable fields of a book by id, including the
// progress counter. Writing the counter here bypasses the ledger; the
// integrity audit reports any drift that introduces.
func (r *Repository) Update(book *entities.Book) error {
	if book.ID == 0 {
		return fmt.Errorf("book id is required for update: %w", dberrors.ErrInvalidReference)
	}
	if strings.TrimSpace(book.Title) == "" || strings.TrimSpace(book.Author) == "" {
		return fmt.Errorf("title and author are required: %w", dberrors.ErrInvalidValue)
	}

	result := r.db.Model(&entities.Book{}).
		Where("id = ?", book.ID).
		Select("title", "author", "genre", "cover_image", "total_pages",
			"current_page", "start_date", "end_date", "notes").
		Updates(book)
	if result.Error != nil {
		return dberrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", book.ID, dberrors.ErrNotFound)
	}
	return nil
}

// Delete removes a book and every reading session referencing it in one
// transaction, so a failure at any step leaves both tables untouched
// and no orphaned sessions can survive.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return dberrors.Storage(result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", id, dberrors.ErrNotFound)
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.ReadingSession{}).Error; err != nil {
			return dberrors.Storage(err)
		}
		return nil
	})
}

// List returns all books. Order is unspecified; callers sort as needed.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Find(&books).Error; err != nil {
		return nil, dberrors.Storage(err)
	}
	return books, nil
}

// UpdateLookupFields fills metadata fetched from the external lookup
// service. Zero values mean "leave the column alone"; the progress
// counter is deliberately out of reach here.
func (r *Repository) UpdateLookupFields(id uint, totalPages int, coverImage string) error {
	updates := map[string]any{}
	if totalPages > 0 {
		updates["total_pages"] = totalPages
	}
	if coverImage != "" {
		updates["cover_image"] = coverImage
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return dberrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, dberrors.ErrNotFound)
	}
	return nil
}
