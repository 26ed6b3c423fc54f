// api/analytics/service.go
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"brightfolio/api/models"
)

// ErrBadRequest marks a report request missing a required parameter.
var ErrBadRequest = errors.New("missing required parameter")

// bounceThresholdSeconds is the time-on-page below which a reporting session
// counts as a bounce. A policy constant, not derived from anything.
const bounceThresholdSeconds = 5

// EventFilter narrows an event-store query. Zero fields are not applied.
type EventFilter struct {
	Start       time.Time
	End         time.Time
	ContentType string
	ContentID   string
	EventType   string
}

// EventSource is the read surface of the externally owned event table.
type EventSource interface {
	QueryEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	CountEvents(ctx context.Context, filter EventFilter) (int, error)
}

// Service composes the classifier, aggregator, scorer, comparator and
// enricher into the externally visible reports. It holds no state beyond its
// collaborators; every report is a pure function of the fetched window.
type Service struct {
	events  EventSource
	content ContentResolver
	now     func() time.Time
}

func NewService(events EventSource, content ContentResolver) *Service {
	return &Service{
		events:  events,
		content: content,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// window converts a day count into [start, now).
func (s *Service) window(days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	end := s.now()
	return end.Add(-time.Duration(days) * 24 * time.Hour), end
}

// Overview builds the admin dashboard report. Authorization happens at the
// transport layer; upstream failures propagate to the caller.
func (s *Service) Overview(ctx context.Context, days int) (*models.OverviewReport, error) {
	if days < 1 {
		days = 30
	}
	start, end := s.window(days)

	events, err := s.events.QueryEvents(ctx, EventFilter{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to query events for overview: %w", err)
	}

	agg := AggregateWindow(events, start, end)
	return &models.OverviewReport{
		Period:       days,
		TotalViews:   agg.TotalViews,
		ViewsByType:  agg.ViewsByType,
		TopContent:   EnrichTopContent(ctx, s.content, agg.TopContent(10)),
		TopReferrers: TopReferrers(events, start, end, 10, SourceOrRaw),
		DailyViews:   agg.DailyViews,
	}, nil
}

// PublicSummary builds the public widget report. It never returns an error:
// the widget must render something, so upstream failures degrade to an empty
// zero-valued report via degradeOnFailure.
func (s *Service) PublicSummary(ctx context.Context, days int) *models.PublicSummaryReport {
	if days < 1 {
		days = 30
	}
	return degradeOnFailure(days, func() (*models.PublicSummaryReport, error) {
		return s.publicSummary(ctx, days)
	})
}

// degradeOnFailure applies the public widget contract: any failure inside fn
// is logged and replaced by an empty report for the same period.
func degradeOnFailure(days int, fn func() (*models.PublicSummaryReport, error)) *models.PublicSummaryReport {
	report, err := fn()
	if err != nil {
		log.Printf("Public summary degraded to empty report: %v", err)
		return emptySummary(days)
	}
	return report
}

func emptySummary(days int) *models.PublicSummaryReport {
	return &models.PublicSummaryReport{
		Period:         days,
		ViewsByType:    map[string]int{},
		TopContent:     []models.TopContentItem{},
		DailyViews:     []models.DailyCount{},
		EventBreakdown: map[string]int{},
		Referrers:      []models.ReferrerStat{},
		Devices:        []models.DeviceStat{},
	}
}

func (s *Service) publicSummary(ctx context.Context, days int) (*models.PublicSummaryReport, error) {
	start, end := s.window(days)

	events, err := s.events.QueryEvents(ctx, EventFilter{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to query events for public summary: %w", err)
	}

	prevStart, prevEnd := PreviousWindow(start, end)
	previousViews, err := s.events.CountEvents(ctx, EventFilter{
		Start:     prevStart,
		End:       prevEnd,
		EventType: models.EventTypeView,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count previous-window views: %w", err)
	}

	agg := AggregateWindow(events, start, end)

	report := emptySummary(days)
	report.TotalViews = agg.TotalViews
	report.PreviousTotalViews = previousViews
	report.GrowthPercentage = GrowthPercentage(agg.TotalViews, previousViews)
	report.ViewsByType = agg.ViewsByType
	report.TopContent = EnrichTopContent(ctx, s.content, agg.TopContent(10))
	report.DailyViews = agg.DailyViews
	report.EventBreakdown = agg.EventBreakdown
	report.Referrers = TopReferrers(events, start, end, 5, SourceOrExternal)
	report.Devices = DeviceBreakdown(events, start, end)
	report.UniqueVisitors = agg.UniqueVisitors
	report.EngagementRate = Percentage(agg.NonViewEvents(), agg.TotalViews)
	report.AvgViewsPerDay = int(math.Round(float64(agg.TotalViews) / float64(days)))
	return report, nil
}

// Trending ranks content over the window and resolves titles for the
// surviving items.
func (s *Service) Trending(ctx context.Context, days int, typeFilter string, limit int) ([]models.TrendingItem, error) {
	if days < 1 {
		days = 7
	}
	start, end := s.window(days)

	events, err := s.events.QueryEvents(ctx, EventFilter{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to query events for trending: %w", err)
	}

	items := Trending(events, end, typeFilter, limit)
	return EnrichTrending(ctx, s.content, items), nil
}

// ContentPerformance builds the per-item drill-down report.
func (s *Service) ContentPerformance(ctx context.Context, contentType, contentID string, days int) (*models.ContentPerformanceReport, error) {
	if contentType == "" || contentID == "" {
		return nil, fmt.Errorf("%w: content type and id are required", ErrBadRequest)
	}
	if days < 1 {
		days = 30
	}
	start, end := s.window(days)

	events, err := s.events.QueryEvents(ctx, EventFilter{
		Start:       start,
		End:         end,
		ContentType: contentType,
		ContentID:   contentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query events for content performance: %w", err)
	}

	agg := AggregateWindow(events, start, end)

	report := &models.ContentPerformanceReport{
		ContentID:      contentID,
		ContentType:    contentType,
		Period:         days,
		TotalViews:     agg.TotalViews,
		ViewsOverTime:  agg.DailyViews,
		SharePlatforms: make(map[string]int),
		TopReferrers:   TopReferrers(events, start, end, 5, SourceOrExternal),
	}

	var timeOnPageSum, scrollDepthSum float64
	var timeOnPageSessions, scrollDepthSessions, bounces int

	for _, ev := range events {
		if ev.CreatedAt.Before(start) || !ev.CreatedAt.Before(end) {
			continue
		}
		switch ev.EventType {
		case models.EventTypeView:
			report.HourlyViews[ev.CreatedAt.UTC().Hour()]++
			if t := ev.Metadata.TimeOnPage; t != nil {
				timeOnPageSum += *t
				timeOnPageSessions++
				if *t < bounceThresholdSeconds {
					bounces++
				}
			}
			if d := ev.Metadata.ScrollDepth; d != nil {
				scrollDepthSum += *d
				scrollDepthSessions++
			}
		case models.EventTypeClick:
			report.Engagement.Clicks++
		case models.EventTypeShare:
			report.Engagement.Shares++
			platform := ev.Metadata.Platform
			if platform == "" {
				platform = "unknown"
			}
			report.SharePlatforms[platform]++
		}
	}

	report.Engagement.EngagementRate = Percentage(report.Engagement.Clicks+report.Engagement.Shares, agg.TotalViews)
	report.TimeOnPage = averageOver(timeOnPageSum, timeOnPageSessions)
	report.ScrollDepth = averageOver(scrollDepthSum, scrollDepthSessions)
	report.BounceRate = Percentage(bounces, timeOnPageSessions)
	return report, nil
}

// averageOver averages a metric over only the sessions that reported it.
// Zero sessions means a zero summary, not a divide by zero.
func averageOver(sum float64, sessions int) models.MetricSummary {
	summary := models.MetricSummary{TotalSessions: sessions}
	if sessions > 0 {
		summary.Average = int(math.Round(sum / float64(sessions)))
	}
	return summary
}
