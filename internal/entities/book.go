package entities

import (
	"time"
)

// Book is a tracked title in the library.
//
// CurrentPage is derived state: it must equal the sum of PagesRead over
// the book's reading sessions, and only the session ledger may adjust
// it. A direct update through the book repository counts as an
// out-of-band edit and shows up as drift in the integrity audit.
type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null;index;size:512" json:"title"`
	Author      string     `gorm:"not null;index;size:256" json:"author"`
	Genre       string     `gorm:"size:100" json:"genre,omitempty"`
	CoverImage  string     `gorm:"size:1024" json:"cover_image,omitempty"` // URL or local path
	TotalPages  int        `json:"total_pages,omitempty"`
	CurrentPage int        `gorm:"default:0" json:"current_page"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReadingSession is one sitting with a book.
type ReadingSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index;not null" json:"book_id"`
	Date      time.Time `gorm:"index" json:"date"`
	Duration  int       `json:"duration"` // minutes
	PagesRead int       `json:"pages_read"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}
