package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/database"
)

// RouterConfig carries every dependency the router wires up. Optional
// collaborators (lookup, enrichment queue) stay nil when disabled and
// their routes are simply not registered.
type RouterConfig struct {
	Books         BookStore
	Ledger        SessionLedger
	Lookup        LookupProvider
	DB            *database.Database
	Version       string
	EnqueueEnrich func(bookID uint)
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Status)

	booksController := NewBooksController(cfg.Books, cfg.EnqueueEnrich)
	sessionsController := NewSessionsController(cfg.Ledger)
	statsController := NewStatsController(cfg.Ledger)

	api := router.Group("/api")
	{
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:id", booksController.GetBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)
		api.GET("/books/:id/sessions", sessionsController.ListBookSessions)

		api.POST("/sessions", sessionsController.RecordSession)
		api.GET("/sessions", sessionsController.ListSessions)
		api.PUT("/sessions/:id", sessionsController.ReviseSession)
		api.DELETE("/sessions/:id", sessionsController.RemoveSession)

		api.GET("/stats/pages-by-day", statsController.PagesByDay)
		api.GET("/stats/minutes-by-week", statsController.MinutesByWeek)

		if cfg.Lookup != nil {
			lookupController := NewLookupController(cfg.Lookup)
			api.GET("/lookup", lookupController.Suggest)
		}
	}

	return router
}
