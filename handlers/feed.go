package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mensa-darmstadt/openmensa-parser/internal/openmensa"
	"github.com/mensa-darmstadt/openmensa-parser/internal/registry"
	"github.com/mensa-darmstadt/openmensa-parser/pkg/logger"
	"github.com/mensa-darmstadt/openmensa-parser/pkg/metrics"
)

// FeedBuilder builds an OpenMensa document for a canteen over a date range.
// Implemented by parser.Parser; handlers only depend on this slice of it.
type FeedBuilder interface {
	FeedForRange(ctx context.Context, canteenID string, from, to *time.Time) (*openmensa.Document, error)
}

// FeedHandler serves the OpenMensa v2 feed endpoints.
type FeedHandler struct {
	builder   FeedBuilder
	registry  registry.Registry
	deployURL string
}

// NewFeedHandler wires the feed routes. deployURL is the externally visible
// base URL of this service; when non-empty, served documents advertise
// self-referential full/today feed links with refresh schedules.
func NewFeedHandler(builder FeedBuilder, reg registry.Registry, deployURL string) *FeedHandler {
	return &FeedHandler{builder: builder, registry: reg, deployURL: deployURL}
}

func (h *FeedHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/feed/v2/:identifier/full.xml", h.full)
	rg.GET("/feed/v2/:identifier/today.xml", h.today)
}

// full serves the whole plan from today onwards.
func (h *FeedHandler) full(c *gin.Context) {
	today := time.Now()
	h.serve(c, &today, nil, "4")
}

// today serves only the current day's plan.
func (h *FeedHandler) today(c *gin.Context) {
	today := time.Now()
	h.serve(c, &today, &today, "8")
}

func (h *FeedHandler) serve(c *gin.Context, from, to *time.Time, fullFeedHour string) {
	identifier := c.Param("identifier")
	canteenID, err := h.registry.Resolve(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownIdentifier) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.Errorf("failed to resolve identifier %q: %v", identifier, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	start := time.Now()
	doc, err := h.builder.FeedForRange(c.Request.Context(), canteenID, from, to)
	metrics.TranslationDuration.WithLabelValues(canteenID).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TranslationsTotal.WithLabelValues(canteenID, "error").Inc()
		logger.Errorf("failed to build feed for canteen %q: %v", canteenID, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	metrics.TranslationsTotal.WithLabelValues(canteenID, "ok").Inc()

	if h.deployURL != "" {
		doc.Canteen.Feeds = append(doc.Canteen.Feeds, h.selfFeeds(identifier, fullFeedHour)...)
	}

	body, err := doc.Serialize()
	if err != nil {
		logger.Errorf("failed to serialize feed for canteen %q: %v", canteenID, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(body))
}

// selfFeeds are the feed links a served document advertises about itself:
// the "today" variant polled frequently during serving hours and the "full"
// variant refreshed once a day (at a different hour depending on which
// variant the reader came in through).
func (h *FeedHandler) selfFeeds(identifier, fullFeedHour string) []openmensa.Feed {
	return []openmensa.Feed{
		{
			Name:     "full",
			Priority: intp(1),
			URL:      h.deployURL + "/feed/v2/" + identifier + "/full.xml",
			Schedule: &openmensa.Schedule{
				Hour:       fullFeedHour,
				DayOfWeek:  "*",
				DayOfMonth: "*",
				Retry:      "60 5 1440",
			},
		},
		{
			Name:     "today",
			Priority: intp(0),
			URL:      h.deployURL + "/feed/v2/" + identifier + "/today.xml",
			Schedule: &openmensa.Schedule{
				Hour:       "6-16",
				DayOfWeek:  "*",
				DayOfMonth: "*",
				Retry:      "30 1",
			},
		},
	}
}

func intp(i int) *int { return &i }
