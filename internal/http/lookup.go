package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/metadata"
)

// LookupProvider is implemented by metadata.OpenLibraryClient.
type LookupProvider interface {
	Search(ctx context.Context, title, author string) ([]metadata.BookSuggestion, error)
}

// LookupController backs the add-book form's suggestion box. The
// session ledger never goes near this; a lookup failure costs the user
// a suggestion, nothing more.
type LookupController struct {
	provider LookupProvider
}

func NewLookupController(provider LookupProvider) *LookupController {
	return &LookupController{provider: provider}
}

func (controller *LookupController) Suggest(c *gin.Context) {
	title := c.Query("title")
	author := c.Query("author")

	if title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title query parameter is required"})
		return
	}

	suggestions, err := controller.provider.Search(c.Request.Context(), title, author)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions, "count": len(suggestions)})
}
