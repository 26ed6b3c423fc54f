// api/models/report.go
package models

import "time"

// TopContentItem is one row of a topContent list, already resolved against
// the live content collections.
type TopContentItem struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Views int    `json:"views"`
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD (UTC)
	Views int    `json:"views"`
}

type ReferrerStat struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type DeviceStat struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// OverviewReport backs the admin dashboard's top-level view.
type OverviewReport struct {
	Period       int              `json:"period"`
	TotalViews   int              `json:"totalViews"`
	ViewsByType  map[string]int   `json:"viewsByType"`
	TopContent   []TopContentItem `json:"topContent"`
	TopReferrers []ReferrerStat   `json:"topReferrers"`
	DailyViews   []DailyCount     `json:"dailyViews"`
}

// PublicSummaryReport backs the public dashboard widget. It always renders,
// so every field has a sensible zero value.
type PublicSummaryReport struct {
	Period             int              `json:"period"`
	TotalViews         int              `json:"totalViews"`
	PreviousTotalViews int              `json:"previousTotalViews"`
	GrowthPercentage   int              `json:"growthPercentage"`
	ViewsByType        map[string]int   `json:"viewsByType"`
	TopContent         []TopContentItem `json:"topContent"`
	DailyViews         []DailyCount     `json:"dailyViews"`
	EventBreakdown     map[string]int   `json:"eventBreakdown"`
	Referrers          []ReferrerStat   `json:"referrers"`
	Devices            []DeviceStat     `json:"devices"`
	UniqueVisitors     int              `json:"uniqueVisitors"`
	EngagementRate     int              `json:"engagementRate"`
	AvgViewsPerDay     int              `json:"avgViewsPerDay"`
}

// TrendingItem is one entry of a trending ranking.
type TrendingItem struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Score       int       `json:"score"`
	Views       int       `json:"views"`
	RecentViews int       `json:"recentViews"`
	Engagement  int       `json:"engagement"`
	LastViewed  time.Time `json:"lastViewed"`
	Title       string    `json:"title,omitempty"`
	Slug        string    `json:"slug,omitempty"`
}

type EngagementSummary struct {
	Clicks         int `json:"clicks"`
	Shares         int `json:"shares"`
	EngagementRate int `json:"engagementRate"`
}

// MetricSummary reports an average over only the sessions that actually
// supplied the metric.
type MetricSummary struct {
	Average       int `json:"average"`
	TotalSessions int `json:"totalSessions"`
}

// ContentPerformanceReport is the per-item drill-down.
type ContentPerformanceReport struct {
	ContentID      string            `json:"contentId"`
	ContentType    string            `json:"contentType"`
	Period         int               `json:"period"`
	TotalViews     int               `json:"totalViews"`
	ViewsOverTime  []DailyCount      `json:"viewsOverTime"`
	Engagement     EngagementSummary `json:"engagement"`
	TimeOnPage     MetricSummary     `json:"timeOnPage"`
	ScrollDepth    MetricSummary     `json:"scrollDepth"`
	BounceRate     int               `json:"bounceRate"`
	SharePlatforms map[string]int    `json:"sharePlatforms"`
	TopReferrers   []ReferrerStat    `json:"topReferrers"`
	HourlyViews    [24]int           `json:"hourlyViews"`
}
