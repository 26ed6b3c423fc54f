// api/analytics/aggregator.go
package analytics

import (
	"math"
	"sort"
	"time"

	"brightfolio/api/models"
)

// ContentViews is the view count for one (type, id) pair.
type ContentViews struct {
	Type  string
	ID    string
	Views int
}

// WindowAggregate holds the grouped counts for one time window. Every field
// is derived in a single pass over the event slice; slices preserve first
// encounter order so later top-N sorts stay stable.
type WindowAggregate struct {
	TotalViews     int
	ViewsByType    map[string]int
	ContentViews   []ContentViews
	DailyViews     []models.DailyCount
	EventBreakdown map[string]int
	UniqueVisitors int
}

// AggregateWindow counts events inside [start, end). A zero end means "now".
// Events carrying a content id without a content type violate the store's
// invariant and are skipped from content-scoped counts, but still contribute
// to totals and the event breakdown.
func AggregateWindow(events []models.Event, start, end time.Time) *WindowAggregate {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	agg := &WindowAggregate{
		ViewsByType:    make(map[string]int),
		EventBreakdown: make(map[string]int),
	}

	contentIdx := make(map[contentKey]int)
	dailyIdx := make(map[string]int)
	visitors := make(map[string]struct{})

	for _, ev := range events {
		if ev.CreatedAt.Before(start) || !ev.CreatedAt.Before(end) {
			continue
		}

		agg.EventBreakdown[ev.EventType]++

		if ev.EventType != models.EventTypeView {
			continue
		}
		agg.TotalViews++

		day := ev.CreatedAt.UTC().Format("2006-01-02")
		if i, ok := dailyIdx[day]; ok {
			agg.DailyViews[i].Views++
		} else {
			dailyIdx[day] = len(agg.DailyViews)
			agg.DailyViews = append(agg.DailyViews, models.DailyCount{Date: day, Views: 1})
		}

		if v := visitorKey(ev); v != "" {
			visitors[v] = struct{}{}
		}

		if ev.ContentType == nil {
			continue
		}
		agg.ViewsByType[*ev.ContentType]++

		if ev.ContentID == nil {
			continue
		}
		key := contentKey{typ: *ev.ContentType, id: *ev.ContentID}
		if i, ok := contentIdx[key]; ok {
			agg.ContentViews[i].Views++
		} else {
			contentIdx[key] = len(agg.ContentViews)
			agg.ContentViews = append(agg.ContentViews, ContentViews{Type: key.typ, ID: key.id, Views: 1})
		}
	}

	agg.UniqueVisitors = len(visitors)

	sort.SliceStable(agg.DailyViews, func(i, j int) bool {
		return agg.DailyViews[i].Date < agg.DailyViews[j].Date
	})

	return agg
}

type contentKey struct {
	typ string
	id  string
}

// visitorKey picks the coarse unique-visitor proxy for a view event: the IP
// address when present, otherwise the anonymous client token.
func visitorKey(ev models.Event) string {
	if ev.IPAddress != "" {
		return ev.IPAddress
	}
	return ev.Metadata.ClientID
}

// TopContent returns the limit highest-viewed content items, descending by
// views. Ties keep first encounter order.
func (a *WindowAggregate) TopContent(limit int) []ContentViews {
	top := make([]ContentViews, len(a.ContentViews))
	copy(top, a.ContentViews)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Views > top[j].Views
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// NonViewEvents counts every event in the window that is not a view.
func (a *WindowAggregate) NonViewEvents() int {
	n := 0
	for typ, count := range a.EventBreakdown {
		if typ != models.EventTypeView {
			n += count
		}
	}
	return n
}

// TopReferrers classifies the referrer of each view event with the given
// policy and returns the limit most common sources descending, percentages
// taken against the window's total views.
func TopReferrers(events []models.Event, start, end time.Time, limit int, policy ReferrerPolicy) []models.ReferrerStat {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	var stats []models.ReferrerStat
	idx := make(map[string]int)
	totalViews := 0

	for _, ev := range events {
		if ev.EventType != models.EventTypeView {
			continue
		}
		if ev.CreatedAt.Before(start) || !ev.CreatedAt.Before(end) {
			continue
		}
		totalViews++
		src := policy(ev.Referrer)
		if i, ok := idx[src]; ok {
			stats[i].Count++
		} else {
			idx[src] = len(stats)
			stats = append(stats, models.ReferrerStat{Source: src, Count: 1})
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	for i := range stats {
		stats[i].Percentage = Percentage(stats[i].Count, totalViews)
	}
	return stats
}

// DeviceBreakdown buckets view events by device type, descending by count.
func DeviceBreakdown(events []models.Event, start, end time.Time) []models.DeviceStat {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	var stats []models.DeviceStat
	idx := make(map[string]int)
	totalViews := 0

	for _, ev := range events {
		if ev.EventType != models.EventTypeView {
			continue
		}
		if ev.CreatedAt.Before(start) || !ev.CreatedAt.Before(end) {
			continue
		}
		totalViews++
		device := ClassifyDevice(ev.UserAgent)
		if i, ok := idx[device]; ok {
			stats[i].Count++
		} else {
			idx[device] = len(stats)
			stats = append(stats, models.DeviceStat{Type: device, Count: 1})
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	for i := range stats {
		stats[i].Percentage = Percentage(stats[i].Count, totalViews)
	}
	return stats
}

// Percentage computes round(count / max(total, 1) * 100).
func Percentage(count, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
