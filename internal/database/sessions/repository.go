// Package sessions implements the reading-session ledger: the sole
// mutator of the ReadingSessions table and of the derived currentPage
// counter on Books.
//
// Every mutation runs inside a single transaction. The counter is
// maintained with deltas, never recomputed wholesale, and the "previous"
// value a delta is based on is always read within the same transaction
// that writes the new one, so concurrent edits cannot lose updates.
//
// This package implements the SessionLedger interface defined in
// internal/http/sessions.go.
package sessions

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookend/bookend/internal/database/dberrors"
	"github.com/bookend/bookend/internal/entities"
)

// Repository handles all reading-session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts a new session and advances the referenced book's
// progress counter by the session's pages, atomically. The book must
// exist; its counter update doubles as the existence check so a stale
// book id rolls the insert back.
func (r *Repository) Record(session *entities.ReadingSession) (uint, error) {
	if session.Duration <= 0 || session.PagesRead <= 0 {
		return 0, fmt.Errorf("duration and pages read must be positive: %w", dberrors.ErrInvalidValue)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).
			Where("id = ?", session.BookID).
			Update("current_page", gorm.Expr("current_page + ?", session.PagesRead))
		if result.Error != nil {
			return dberrors.Storage(result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", session.BookID, dberrors.ErrInvalidReference)
		}

		session.ID = 0
		if err := tx.Create(session).Error; err != nil {
			return dberrors.Storage(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return session.ID, nil
}

// Revise updates an existing session and adjusts the owning book's
// counter by the difference between the new and previously stored pages.
// The stored row is read inside the transaction, which closes the race
// with a concurrent deletion: a vanished session surfaces as ErrNotFound
// and nothing is written.
//
// Reassigning the session to a different book moves the pages across:
// the old book loses the old pages and the new book gains the new ones,
// both within the same transaction.
func (r *Repository) Revise(session *entities.ReadingSession) error {
	if session.ID == 0 {
		return fmt.Errorf("session id is required for revision: %w", dberrors.ErrInvalidReference)
	}
	if session.Duration <= 0 || session.PagesRead <= 0 {
		return fmt.Errorf("duration and pages read must be positive: %w", dberrors.ErrInvalidValue)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var stored entities.ReadingSession
		if err := tx.First(&stored, session.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("session %d: %w", session.ID, dberrors.ErrNotFound)
			}
			return dberrors.Storage(err)
		}

		// Counters move before the row so a reassignment to a vanished
		// book fails the existence check, not the foreign key.
		if stored.BookID != session.BookID {
			if err := adjustCounter(tx, stored.BookID, -stored.PagesRead); err != nil {
				return err
			}
			result := tx.Model(&entities.Book{}).
				Where("id = ?", session.BookID).
				Update("current_page", gorm.Expr("current_page + ?", session.PagesRead))
			if result.Error != nil {
				return dberrors.Storage(result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("book %d: %w", session.BookID, dberrors.ErrInvalidReference)
			}
		} else if err := adjustCounter(tx, session.BookID, session.PagesRead-stored.PagesRead); err != nil {
			return err
		}

		updates := map[string]any{
			"book_id":    session.BookID,
			"date":       session.Date,
			"duration":   session.Duration,
			"pages_read": session.PagesRead,
			"notes":      session.Notes,
		}
		if err := tx.Model(&entities.ReadingSession{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
			return dberrors.Storage(err)
		}
		return nil
	})
}

// Remove deletes a session and walks the owning book's counter back by
// the session's pages, atomically. Both ids must be present on the
// input; their absence is a caller bug, not a storage state.
func (r *Repository) Remove(session *entities.ReadingSession) error {
	if session.ID == 0 || session.BookID == 0 {
		return fmt.Errorf("session id and book id are required for removal: %w", dberrors.ErrInvalidReference)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.ReadingSession{}, session.ID)
		if result.Error != nil {
			return dberrors.Storage(result.Error)
		}
		// Already gone, e.g. a rapid double submission. Decrementing
		// again would corrupt the counter, so this is a no-op failure.
		if result.RowsAffected == 0 {
			return fmt.Errorf("session %d: %w", session.ID, dberrors.ErrNotFound)
		}
		return adjustCounter(tx, session.BookID, -session.PagesRead)
	})
}

// ListForBook returns one book's sessions, most recent first.
func (r *Repository) ListForBook(bookID uint) ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Where("book_id = ?", bookID).Order("date DESC").Find(&sessions).Error
	if err != nil {
		return nil, dberrors.Storage(err)
	}
	return sessions, nil
}

// ListAll returns every session across all books, most recent first.
// This feeds the dashboard aggregations.
func (r *Repository) ListAll() ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	if err := r.db.Order("date DESC").Find(&sessions).Error; err != nil {
		return nil, dberrors.Storage(err)
	}
	return sessions, nil
}

// TotalPagesRead recomputes the page sum for one book from its session
// rows. The ledger itself never uses this to maintain the counter; it
// exists for the integrity audit and for invariant checks in tests.
func (r *Repository) TotalPagesRead(bookID uint) (int, error) {
	var total int64
	err := r.db.Model(&entities.ReadingSession{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(SUM(pages_read), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, dberrors.Storage(err)
	}
	return int(total), nil
}

// adjustCounter applies a raw delta to a book's progress counter. The
// value is never clamped: if an out-of-band edit already drifted the
// counter, the arithmetic may take it negative, and the integrity audit
// is the place that surfaces it.
func adjustCounter(tx *gorm.DB, bookID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	err := tx.Model(&entities.Book{}).
		Where("id = ?", bookID).
		Update("current_page", gorm.Expr("current_page + ?", delta)).Error
	if err != nil {
		return dberrors.Storage(err)
	}
	return nil
}
