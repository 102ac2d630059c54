package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookend/bookend/internal/metadata"
)

type fakeLookupProvider struct {
	suggestions []metadata.BookSuggestion
	err         error
}

func (f *fakeLookupProvider) Search(_ context.Context, _, _ string) ([]metadata.BookSuggestion, error) {
	return f.suggestions, f.err
}

func setupLookupRouter(provider LookupProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewLookupController(provider)
	router.GET("/api/lookup", controller.Suggest)
	return router
}

func TestLookupAPI_Suggest(t *testing.T) {
	router := setupLookupRouter(&fakeLookupProvider{
		suggestions: []metadata.BookSuggestion{
			{Title: "Dune", Author: "Frank Herbert", TotalPages: 412},
		},
	})

	w := doJSON(t, router, "GET", "/api/lookup?title=dune", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []metadata.BookSuggestion `json:"suggestions"`
		Count       int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Dune", resp.Suggestions[0].Title)
}

func TestLookupAPI_Suggest_RequiresTitle(t *testing.T) {
	router := setupLookupRouter(&fakeLookupProvider{})

	w := doJSON(t, router, "GET", "/api/lookup?author=herbert", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupAPI_Suggest_ProviderDown(t *testing.T) {
	router := setupLookupRouter(&fakeLookupProvider{err: errors.New("timeout")})

	w := doJSON(t, router, "GET", "/api/lookup?title=dune", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
