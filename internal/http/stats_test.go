package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookend/bookend/internal/stats"
)

func TestStatsAPI_PagesByDay(t *testing.T) {
	router, _, cleanup := setupAPITest(t)
	defer cleanup()

	bookID := createBookViaAPI(t, router, "Dune")

	// Two sittings on the same calendar day and one the day after.
	for _, s := range []map[string]any{
		{"book_id": bookID, "date": "2026-03-01T08:00:00Z", "duration": 20, "pages_read": 10},
		{"book_id": bookID, "date": "2026-03-01T22:00:00Z", "duration": 35, "pages_read": 15},
		{"book_id": bookID, "date": "2026-03-02T21:00:00Z", "duration": 30, "pages_read": 7},
	} {
		w := doJSON(t, router, "POST", "/api/sessions", s)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, "GET", "/api/stats/pages-by-day", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Series []stats.DailyPages `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Series, 2)
	assert.Equal(t, "2026-03-01", resp.Series[0].Date)
	assert.Equal(t, 25, resp.Series[0].Pages)
	assert.Equal(t, "2026-03-02", resp.Series[1].Date)
	assert.Equal(t, 7, resp.Series[1].Pages)
}

func TestStatsAPI_MinutesByWeek(t *testing.T) {
	router, _, cleanup := setupAPITest(t)
	defer cleanup()

	bookID := createBookViaAPI(t, router, "Dune")

	for _, s := range []map[string]any{
		{"book_id": bookID, "date": "2026-03-02T20:00:00Z", "duration": 30, "pages_read": 5},
		{"book_id": bookID, "date": "2026-03-08T20:00:00Z", "duration": 45, "pages_read": 5},
		{"book_id": bookID, "date": "2026-03-09T20:00:00Z", "duration": 25, "pages_read": 5},
	} {
		w := doJSON(t, router, "POST", "/api/sessions", s)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, "GET", "/api/stats/minutes-by-week", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Series []stats.WeeklyMinutes `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Series, 2)
	assert.Equal(t, 75, resp.Series[0].Minutes)
	assert.Equal(t, 25, resp.Series[1].Minutes)
}

func TestStatsAPI_EmptyLedger(t *testing.T) {
	router, _, cleanup := setupAPITest(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/api/stats/pages-by-day", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Series []stats.DailyPages `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Series)
}
