package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/database/dberrors"
	"github.com/bookend/bookend/internal/entities"
)

// SessionLedger is implemented by internal/database/sessions.Repository.
type SessionLedger interface {
	Record(session *entities.ReadingSession) (uint, error)
	Revise(session *entities.ReadingSession) error
	Remove(session *entities.ReadingSession) error
	ListForBook(bookID uint) ([]entities.ReadingSession, error)
	ListAll() ([]entities.ReadingSession, error)
}

type SessionsController struct {
	ledger SessionLedger
}

func NewSessionsController(ledger SessionLedger) *SessionsController {
	return &SessionsController{ledger: ledger}
}

func (controller *SessionsController) RecordSession(c *gin.Context) {
	var session entities.ReadingSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if _, err := controller.ledger.Record(&session); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (controller *SessionsController) ReviseSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var session entities.ReadingSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	session.ID = id

	if err := controller.ledger.Revise(&session); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session revised"})
}

type removeSessionRequest struct {
	BookID    uint `json:"book_id"`
	PagesRead int  `json:"pages_read"`
}

func (controller *SessionsController) RemoveSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req removeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	session := entities.ReadingSession{
		ID:        id,
		BookID:    req.BookID,
		PagesRead: req.PagesRead,
	}
	if err := controller.ledger.Remove(&session); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session removed"})
}

// ListSessions returns every session across all books, most recent
// first. Same degraded-read policy as ListBooks: log and serve empty.
func (controller *SessionsController) ListSessions(c *gin.Context) {
	sessions, err := controller.ledger.ListAll()
	if err != nil {
		if errors.Is(err, dberrors.ErrStorage) {
			log.Printf("ListSessions: %v", err)
			c.JSON(http.StatusOK, gin.H{"sessions": []entities.ReadingSession{}, "count": 0})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

func (controller *SessionsController) ListBookSessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sessions, err := controller.ledger.ListForBook(id)
	if err != nil {
		if errors.Is(err, dberrors.ErrStorage) {
			log.Printf("ListBookSessions: %v", err)
			c.JSON(http.StatusOK, gin.H{"sessions": []entities.ReadingSession{}, "count": 0})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}
