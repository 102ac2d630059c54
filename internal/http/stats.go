package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/database/dberrors"
	"github.com/bookend/bookend/internal/stats"
)

// StatsController serves the dashboard aggregations. Both endpoints are
// projections over the full session set; the fold itself is pure and
// lives in internal/stats.
type StatsController struct {
	ledger SessionLedger
}

func NewStatsController(ledger SessionLedger) *StatsController {
	return &StatsController{ledger: ledger}
}

func (controller *StatsController) PagesByDay(c *gin.Context) {
	sessions, err := controller.ledger.ListAll()
	if err != nil {
		if errors.Is(err, dberrors.ErrStorage) {
			log.Printf("PagesByDay: %v", err)
			c.JSON(http.StatusOK, gin.H{"series": []stats.DailyPages{}})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": stats.PagesByDay(sessions)})
}

func (controller *StatsController) MinutesByWeek(c *gin.Context) {
	sessions, err := controller.ledger.ListAll()
	if err != nil {
		if errors.Is(err, dberrors.ErrStorage) {
			log.Printf("MinutesByWeek: %v", err)
			c.JSON(http.StatusOK, gin.H{"series": []stats.WeeklyMinutes{}})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": stats.MinutesByWeek(sessions)})
}
