package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SmileyChris/worshipwise-sub003/internal/engine"
	"github.com/SmileyChris/worshipwise-sub003/internal/snapshot"
)

// GetOverview returns aggregated dashboard data: library counts, the
// current season, rotation health, and the top few recommendations.
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	defer h.observe("overview", time.Now())

	now := time.Now().UTC()
	snap, err := h.store.Take(h.churchID(c), snapshot.LastDays(now, 90))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	health, _ := engine.RotationHealthFor(snap.Songs, snap.Usage, now, h.cfg)

	recs, _, err := engine.Recommend(snap.Songs, snap.Usage, now, h.hemi, engine.Filters{Limit: 5}, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	completed := 0
	for _, svc := range snap.Services {
		if svc.IsCompleted() {
			completed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_songs":        len(snap.Songs),
			"usage_records":      len(snap.Usage),
			"completed_services": completed,
			"window_days":        90,
		},
		"season":              engine.CurrentSeason(now, h.hemi),
		"rotation_health":     health,
		"top_recommendations": recs,
	})
}
