// api/analytics/trending.go
package analytics

import (
	"sort"
	"time"

	"brightfolio/api/models"
)

// recentWindow is the fixed lookback for the "recent views" component of the
// trending score. It is independent of the report's requested window on
// purpose; treat it as a tunable policy constant, not derived math.
const recentWindow = 24 * time.Hour

// Score weights: recency dominates, raw volume keeps evergreen items on the
// board, engagement (clicks + shares) breaks the middle.
const (
	recentViewsWeight = 3
	totalViewsWeight  = 1
	engagementWeight  = 2
)

// Trending ranks content items by score = recentViews*3 + views*1 +
// engagement*2 over the supplied window slice. recentViews counts views
// strictly within the trailing 24 hours of now. An empty typeFilter keeps
// all content types; limit defaults to 10. Ties keep first encounter order.
func Trending(events []models.Event, now time.Time, typeFilter string, limit int) []models.TrendingItem {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if limit <= 0 {
		limit = 10
	}
	recentCutoff := now.Add(-recentWindow)

	var items []models.TrendingItem
	idx := make(map[contentKey]int)

	for _, ev := range events {
		if ev.ContentType == nil || ev.ContentID == nil {
			continue
		}
		key := contentKey{typ: *ev.ContentType, id: *ev.ContentID}
		i, ok := idx[key]
		if !ok {
			idx[key] = len(items)
			i = len(items)
			items = append(items, models.TrendingItem{Type: key.typ, ID: key.id})
		}

		switch ev.EventType {
		case models.EventTypeView:
			items[i].Views++
			if ev.CreatedAt.After(recentCutoff) {
				items[i].RecentViews++
			}
			if ev.CreatedAt.After(items[i].LastViewed) {
				items[i].LastViewed = ev.CreatedAt
			}
		case models.EventTypeClick, models.EventTypeShare:
			items[i].Engagement++
		}
	}

	if typeFilter != "" {
		filtered := items[:0]
		for _, it := range items {
			if it.Type == typeFilter {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	for i := range items {
		items[i].Score = items[i].RecentViews*recentViewsWeight +
			items[i].Views*totalViewsWeight +
			items[i].Engagement*engagementWeight
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
