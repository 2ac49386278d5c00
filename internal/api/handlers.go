package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"compscope/server/config"
	"compscope/server/internal/database"
	"compscope/server/internal/filter"
	"compscope/server/internal/geo"
	"compscope/server/internal/market"
	"compscope/server/internal/models"
	"compscope/server/internal/normalize"
	"compscope/server/internal/pricing"
	"compscope/server/internal/queue"
	"compscope/server/internal/stats"
	"compscope/server/internal/timeseries"
)

// Handler wires the report endpoints to the store, the ingest queue and
// the engine packages. The engine itself is stateless; every request
// rebuilds its FilterState from query parameters.
type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	queue    *queue.RecordQueue
	cfg      *config.Config
	isRental filter.RentalPredicate
	now      func() time.Time
}

func NewHandler(db *database.Database, q *queue.RecordQueue, cfg *config.Config, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		queue:    q,
		cfg:      cfg,
		isRental: filter.DefaultRentalPredicate,
		now:      time.Now,
	}
}

// filterStateFromQuery rebuilds the caller's FilterState from the
// `status` and `exclude` query parameters.
func filterStateFromQuery(c *gin.Context) models.FilterState {
	state := models.FilterState{Status: models.FilterAll}
	if s := c.Query("status"); s != "" {
		state.Status = models.StatusFilter(s)
	}
	if raw := c.Query("exclude"); raw != "" {
		state.Excluded = make(map[string]bool)
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				state.Excluded[id] = true
			}
		}
	}
	return state
}

// loadComparables fetches the record set for the requested subject.
// Writes the error response itself and returns ok=false on failure.
func (h *Handler) loadComparables(c *gin.Context) (records []*models.PropertyRecord, subjectID string, ok bool) {
	subjectID = c.Query("subject_id")
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id is required"})
		return nil, "", false
	}

	records, err := h.db.GetComparables(subjectID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load comparables")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comparables"})
		return nil, "", false
	}
	return records, subjectID, true
}

// summaryMetrics lists every report metric with its extractor. Each one
// is just a different extractor plugged into the same aggregation rule.
var summaryMetrics = []struct {
	name    string
	extract func(*models.PropertyRecord) *float64
}{
	{"price", func(r *models.PropertyRecord) *float64 {
		if p := normalize.Price(r); p > 0 {
			return &p
		}
		return nil
	}},
	{"price_per_sqft", normalize.PricePerSqFt},
	{"price_per_acre", normalize.PricePerAcre},
	{"days_on_market", func(r *models.PropertyRecord) *float64 {
		if r.DaysOnMarket != nil {
			v := float64(*r.DaysOnMarket)
			return &v
		}
		return nil
	}},
	{"living_area", func(r *models.PropertyRecord) *float64 {
		if v := normalize.LivingAreaSqFt(r); v > 0 {
			return &v
		}
		return nil
	}},
	{"lot_acres", normalize.LotAcres},
	{"bedrooms", func(r *models.PropertyRecord) *float64 {
		if r.Bedrooms != nil {
			v := float64(*r.Bedrooms)
			return &v
		}
		return nil
	}},
	{"bathrooms", func(r *models.PropertyRecord) *float64 {
		return r.BathroomsTotal
	}},
	{"year_built", func(r *models.PropertyRecord) *float64 {
		if r.YearBuilt != nil {
			v := float64(*r.YearBuilt)
			return &v
		}
		return nil
	}},
}

// GetReportSummary returns the descriptive statistics block: one
// StatMetric per metric over the resolved included subset.
func (h *Handler) GetReportSummary(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	included := filter.ResolveIncluded(records, state, h.isRental)
	metrics := make(map[string]models.StatMetric, len(summaryMetrics))
	for _, m := range summaryMetrics {
		metrics[m.name] = stats.Aggregate(stats.Collect(included, m.extract), stats.PositiveOnly)
	}

	c.JSON(http.StatusOK, gin.H{
		"subject_id": subjectID,
		"included":   len(included),
		"counts":     filter.CountByStatus(records, state),
		"metrics":    metrics,
	})
}

// GetPricingSuggestion returns the suggested list-price range derived
// from closed comparables, or an explicit null when fewer than two
// priced closed sales survive the filter.
func (h *Handler) GetPricingSuggestion(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	closed := filter.ClosedSales(records, state, h.isRental)
	opts := pricing.Options{
		TrendCapPct: h.cfg.Engine.TrendCapPct,
		HotMaxDOM:   h.cfg.Engine.HotMarketMaxDOM,
		SlowMinDOM:  h.cfg.Engine.SlowMarketMinDOM,
	}

	c.JSON(http.StatusOK, gin.H{
		"subject_id": subjectID,
		"suggestion": pricing.Suggest(closed, opts),
	})
}

// GetMarketConditions returns absorption, months of inventory, the
// market classification and the year-over-year comparison.
func (h *Handler) GetMarketConditions(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	counts := filter.CountByStatus(records, state)
	closed := filter.ClosedSales(records, state, h.isRental)

	conditions := market.Classify(
		counts[models.StatusActive],
		len(closed),
		h.cfg.Engine.AbsorptionWindowMonths,
	)

	c.JSON(http.StatusOK, gin.H{
		"subject_id":    subjectID,
		"market":        conditions,
		"year_over_year": market.CompareYearOverYear(closed, h.now()),
	})
}

// GetTrend returns the monthly closed-sale buckets and the
// period-over-period change.
func (h *Handler) GetTrend(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	points := timeseries.MonthlyTrend(filter.ClosedSales(records, state, h.isRental))

	c.JSON(http.StatusOK, gin.H{
		"subject_id":        subjectID,
		"points":            points,
		"period_change_pct": timeseries.PeriodChange(points),
	})
}

// GetRegression returns the size-vs-price best-fit line over closed
// sales, or null when no line is defined.
func (h *Handler) GetRegression(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	var points []stats.Point
	for _, rec := range filter.ClosedSales(records, state, h.isRental) {
		price := normalize.Price(rec)
		size := normalize.LivingAreaSqFt(rec)
		if price > 0 && size > 0 {
			points = append(points, stats.Point{X: size, Y: price})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"subject_id": subjectID,
		"samples":    len(points),
		"regression": stats.FitLine(points),
	})
}

// GetComparables returns the resolved included subset, annotated with
// each comparable's distance from the subject when coordinates exist.
func (h *Handler) GetComparables(c *gin.Context) {
	records, subjectID, ok := h.loadComparables(c)
	if !ok {
		return
	}
	state := filterStateFromQuery(c)

	included := filter.ResolveIncluded(records, state, h.isRental)

	subject, err := h.db.GetRecord(subjectID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load subject record for distances")
	}
	geo.AnnotateDistances(subject, included)

	c.JSON(http.StatusOK, gin.H{
		"subject_id":  subjectID,
		"comparables": included,
	})
}

// IngestBatch accepts a feed batch and queues it for persistence.
func (h *Handler) IngestBatch(c *gin.Context) {
	var batch []*models.PropertyRecord
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.logger.WithError(err).Error("Failed to parse ingest batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch payload"})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch is empty"})
		return
	}
	for _, rec := range batch {
		if rec == nil || rec.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every record needs an id"})
			return
		}
	}

	if err := h.queue.Push(batch); err != nil {
		h.logger.WithError(err).Error("Failed to queue ingest batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingest queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "queued",
		"records": len(batch),
	})
}
