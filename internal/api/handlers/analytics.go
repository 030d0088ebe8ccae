package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/SmileyChris/worshipwise-sub003/internal/engine"
	"github.com/SmileyChris/worshipwise-sub003/internal/models"
	"github.com/SmileyChris/worshipwise-sub003/internal/snapshot"
)

var (
	analysisRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worship_analysis_requests_total",
			Help: "Total analysis requests",
		},
		[]string{"kind"},
	)
	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "worship_analysis_duration_seconds",
			Help:    "Analysis processing time",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(analysisRequests, analysisDuration)
}

// AnalyticsHandler serves the recommendation and rotation-analytics
// endpoints. Every request takes a fresh snapshot; the engine itself
// stays pure.
type AnalyticsHandler struct {
	store         snapshot.Provider
	cfg           engine.Config
	hemi          engine.Hemisphere
	defaultChurch uint
}

func NewAnalyticsHandler(db *gorm.DB, cfg engine.Config, hemi engine.Hemisphere, defaultChurch uint) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:         snapshot.NewStore(db),
		cfg:           cfg,
		hemi:          hemi,
		defaultChurch: defaultChurch,
	}
}

func (h *AnalyticsHandler) observe(kind string, started time.Time) {
	analysisRequests.WithLabelValues(kind).Inc()
	analysisDuration.Observe(time.Since(started).Seconds())
}

func (h *AnalyticsHandler) churchID(c *gin.Context) uint {
	if raw := c.Query("church_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return uint(id)
		}
	}
	return h.defaultChurch
}

func (h *AnalyticsHandler) windowDays(c *gin.Context, fallback int) int {
	if raw := c.Query("days"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// GetRecommendations returns the ranked rotation candidates.
func (h *AnalyticsHandler) GetRecommendations(c *gin.Context) {
	defer h.observe("recommendations", time.Now())

	snap, err := h.store.Take(h.churchID(c), snapshot.LastDays(time.Now().UTC(), h.windowDays(c, 365)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filters := engine.Filters{}
	if raw := c.Query("limit"); raw != "" {
		filters.Limit, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("exclude_recent_days"); raw != "" {
		filters.ExcludeRecentDays, _ = strconv.Atoi(raw)
	}

	recs, warnings, err := engine.Recommend(snap.Songs, snap.Usage, time.Now().UTC(), h.hemi, filters, h.cfg)
	if err != nil {
		// Only configuration problems reach here
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_version": snap.Version,
		"recommendations":  recs,
		"warnings":         warnings,
		"insights":         engine.SummarizeRecommendations(recs),
	})
}

type setRequest struct {
	SongIDs []uint `json:"song_ids" binding:"required"`
}

// setSongs loads the requested songs preserving the set order.
func (h *AnalyticsHandler) setSongs(c *gin.Context) ([]models.Song, bool) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "song_ids is required"})
		return nil, false
	}

	library, err := h.store.Songs(h.churchID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	byID := make(map[uint]models.Song, len(library))
	for _, s := range library {
		byID[s.ID] = s
	}

	set := make([]models.Song, 0, len(req.SongIDs))
	for _, id := range req.SongIDs {
		if s, ok := byID[id]; ok {
			set = append(set, s)
		}
	}
	return set, true
}

// AnalyzeFlow flags rough transitions in an ordered set.
func (h *AnalyticsHandler) AnalyzeFlow(c *gin.Context) {
	defer h.observe("flow", time.Now())

	set, ok := h.setSongs(c)
	if !ok {
		return
	}
	suggestions := engine.AnalyzeFlow(set, h.cfg)
	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"insights":    engine.SummarizeFlow(suggestions),
	})
}

// AnalyzeBalance reports the tempo split of an ordered set.
func (h *AnalyticsHandler) AnalyzeBalance(c *gin.Context) {
	defer h.observe("balance", time.Now())

	set, ok := h.setSongs(c)
	if !ok {
		return
	}
	balance := engine.AnalyzeBalance(set, h.cfg)
	c.JSON(http.StatusOK, gin.H{
		"balance":  balance,
		"insights": engine.SummarizeBalance(balance),
	})
}

// GetSeasonal returns the seasonal trend for a month (default: now).
func (h *AnalyticsHandler) GetSeasonal(c *gin.Context) {
	defer h.observe("seasonal", time.Now())

	now := time.Now().UTC()
	month := int(now.Month())
	if raw := c.Query("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	hemi := h.hemi
	if raw := c.Query("hemisphere"); raw == string(engine.HemisphereSouth) || raw == string(engine.HemisphereNorth) {
		hemi = engine.Hemisphere(raw)
	}

	// Seasonal ranking wants several years of history
	snap, err := h.store.Take(h.churchID(c), snapshot.LastDays(now, 365*3))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	trend := engine.SeasonalTrendFor(snap.Songs, snap.Usage, month, hemi, h.cfg)
	c.JSON(http.StatusOK, gin.H{
		"trend":    trend,
		"season":   engine.CurrentSeason(now, hemi),
		"insights": engine.SummarizeTrend(trend),
	})
}

// ComparePeriods diffs the requested window against the one before it.
func (h *AnalyticsHandler) ComparePeriods(c *gin.Context) {
	defer h.observe("compare", time.Now())

	churchID := h.churchID(c)
	now := time.Now().UTC()
	current := snapshot.LastDays(now, h.windowDays(c, 30))
	previous := current.Shift()

	curSnap, err := h.store.Take(churchID, current)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	prevSnap, err := h.store.Take(churchID, previous)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := engine.ComparePeriods(curSnap.Usage, prevSnap.Usage, curSnap.Services, prevSnap.Services)
	c.JSON(http.StatusOK, gin.H{
		"comparison": result,
		"insights":   engine.SummarizeComparison(result),
	})
}

// GetHealthScore returns the aggregate rotation-health score.
func (h *AnalyticsHandler) GetHealthScore(c *gin.Context) {
	defer h.observe("health", time.Now())

	now := time.Now().UTC()
	snap, err := h.store.Take(h.churchID(c), snapshot.LastDays(now, h.windowDays(c, 90)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	health, warnings := engine.RotationHealthFor(snap.Songs, snap.Usage, now, h.cfg)
	c.JSON(http.StatusOK, gin.H{
		"snapshot_version": snap.Version,
		"health":           health,
		"warnings":         warnings,
	})
}
