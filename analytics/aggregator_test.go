package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightfolio/api/models"
)

func strPtr(s string) *string { return &s }

func viewEvent(contentType, contentID string, at time.Time) models.Event {
	ev := models.Event{EventType: models.EventTypeView, CreatedAt: at}
	if contentType != "" {
		ev.ContentType = strPtr(contentType)
	}
	if contentID != "" {
		ev.ContentID = strPtr(contentID)
	}
	return ev
}

func TestAggregateWindowCounts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.Add(-7 * 24 * time.Hour)

	events := []models.Event{
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-1*time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-2*time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "b", now.Add(-26*time.Hour)),
		viewEvent(models.ContentTypeProject, "p", now.Add(-30*time.Hour)),
		// view with no content association: in totals, not in viewsByType
		viewEvent("", "", now.Add(-3*time.Hour)),
		// invariant violation: content id without type, skipped from content counts
		{EventType: models.EventTypeView, ContentID: strPtr("orphan"), CreatedAt: now.Add(-4 * time.Hour)},
		// non-view events count only in the breakdown
		{EventType: models.EventTypeClick, ContentType: strPtr(models.ContentTypeBlogPost), ContentID: strPtr("a"), CreatedAt: now.Add(-1 * time.Hour)},
		{EventType: models.EventTypeSearch, CreatedAt: now.Add(-5 * time.Hour)},
		// outside the window entirely
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-8*24*time.Hour)),
	}

	agg := AggregateWindow(events, start, now)

	assert.Equal(t, 6, agg.TotalViews)
	assert.Equal(t, map[string]int{
		models.ContentTypeBlogPost: 3,
		models.ContentTypeProject:  1,
	}, agg.ViewsByType)
	assert.Equal(t, map[string]int{
		models.EventTypeView:   6,
		models.EventTypeClick:  1,
		models.EventTypeSearch: 1,
	}, agg.EventBreakdown)
	assert.Equal(t, 2, agg.NonViewEvents())

	// viewsByType excludes untyped views but totals include them
	typed := 0
	for _, n := range agg.ViewsByType {
		typed += n
	}
	assert.Equal(t, agg.TotalViews-2, typed) // one untyped view + one orphan

	// daily views sum to total and ascend by date
	dailySum := 0
	for i, d := range agg.DailyViews {
		dailySum += d.Views
		if i > 0 {
			assert.Less(t, agg.DailyViews[i-1].Date, d.Date)
		}
	}
	assert.Equal(t, agg.TotalViews, dailySum)
}

func TestAggregateWindowUniqueVisitors(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)

	withIP := func(ip string) models.Event {
		ev := viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour))
		ev.IPAddress = ip
		return ev
	}
	withClient := func(id string) models.Event {
		ev := viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour))
		ev.Metadata.ClientID = id
		return ev
	}

	events := []models.Event{
		withIP("10.0.0.1"),
		withIP("10.0.0.1"), // duplicate IP
		withIP("10.0.0.2"),
		withClient("anon-1"),
		withClient("anon-1"), // duplicate token
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour)), // neither
	}

	// a click with a fresh IP must not count as a visitor
	click := models.Event{EventType: models.EventTypeClick, CreatedAt: now.Add(-time.Hour), IPAddress: "10.0.0.9"}
	events = append(events, click)

	agg := AggregateWindow(events, start, now)
	assert.Equal(t, 3, agg.UniqueVisitors)
}

func TestTopContentStableOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)

	// a wins on views; b and c tie and must keep encounter order
	events := []models.Event{
		viewEvent(models.ContentTypeBlogPost, "b", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "c", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "b", now.Add(-time.Hour)),
		viewEvent(models.ContentTypeBlogPost, "c", now.Add(-time.Hour)),
	}

	agg := AggregateWindow(events, start, now)
	top := agg.TopContent(2)

	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].ID)
	assert.Equal(t, 3, top[0].Views)
	assert.Equal(t, "b", top[1].ID)

	full := agg.TopContent(10)
	require.Len(t, full, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{full[0].ID, full[1].ID, full[2].ID})
}

func TestTopReferrersPolicies(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)

	withReferrer := func(ref string) models.Event {
		ev := viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour))
		ev.Referrer = ref
		return ev
	}

	events := []models.Event{
		withReferrer("https://www.google.com/search"),
		withReferrer("https://www.google.com/"),
		withReferrer("not a url"),
		withReferrer(""),
	}

	public := TopReferrers(events, start, now, 5, SourceOrExternal)
	require.Len(t, public, 3)
	assert.Equal(t, models.ReferrerStat{Source: "google.com", Count: 2, Percentage: 50}, public[0])
	assert.Equal(t, "External", public[1].Source)
	assert.Equal(t, "Direct", public[2].Source)

	overview := TopReferrers(events, start, now, 5, SourceOrRaw)
	require.Len(t, overview, 3)
	assert.Equal(t, "not a url", overview[1].Source)
}

func TestDeviceBreakdown(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)

	withUA := func(ua string) models.Event {
		ev := viewEvent(models.ContentTypeBlogPost, "a", now.Add(-time.Hour))
		ev.UserAgent = ua
		return ev
	}

	events := []models.Event{
		withUA("Mozilla/5.0 (iPhone) Mobile"),
		withUA("Mozilla/5.0 (iPhone) Mobile"),
		withUA("Mozilla/5.0 (Windows NT 10.0)"),
		withUA(""),
	}

	devices := DeviceBreakdown(events, start, now)
	require.Len(t, devices, 3)
	assert.Equal(t, models.DeviceStat{Type: DeviceMobile, Count: 2, Percentage: 50}, devices[0])

	total := 0
	for _, d := range devices {
		total += d.Count
	}
	assert.Equal(t, 4, total)
}

func TestPercentageGuardsDenominator(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 500, Percentage(5, 0)) // denominator floored at 1
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
}
