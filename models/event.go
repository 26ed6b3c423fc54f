// api/models/event.go
package models

import (
	"strconv"
	"time"
)

// Content types tracked by the site. Events not tied to a piece of content
// (e.g. a site-wide search) carry no content type at all.
const (
	ContentTypeBlogPost  = "blog_post"
	ContentTypeCaseStudy = "case_study"
	ContentTypeProject   = "project"
	ContentTypeResource  = "resource"
)

// Event types the widget emits.
const (
	EventTypeView       = "view"
	EventTypeClick      = "click"
	EventTypeShare      = "share"
	EventTypeDownload   = "download"
	EventTypeSearch     = "search"
	EventTypeFormSubmit = "form_submit"
)

// Event represents a single interaction event as stored in the append-only
// event table. ContentType/ContentID are nil for non-content events.
type Event struct {
	EventID     string        `json:"eventId"`
	ContentType *string       `json:"contentType,omitempty"`
	ContentID   *string       `json:"contentId,omitempty"`
	EventType   string        `json:"eventType"`
	CreatedAt   time.Time     `json:"createdAt"`
	UserAgent   string        `json:"userAgent,omitempty"`
	Referrer    string        `json:"referrer,omitempty"`
	IPAddress   string        `json:"ipAddress,omitempty"`
	Metadata    EventMetadata `json:"metadata,omitempty"`
}

// IsValidContentType reports whether t names a known content collection.
func IsValidContentType(t string) bool {
	switch t {
	case ContentTypeBlogPost, ContentTypeCaseStudy, ContentTypeProject, ContentTypeResource:
		return true
	default:
		return false
	}
}

// EventMetadata is the typed view of the open key-value metadata map the
// widget sends. Numeric fields are pointers: absent or malformed values stay
// nil so averages can exclude sessions that never reported them.
type EventMetadata struct {
	TimeOnPage  *float64 `json:"timeOnPage,omitempty"`
	ScrollDepth *float64 `json:"scrollDepth,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
}

// ParseEventMetadata extracts the recognized keys from a raw metadata map.
// Unknown keys are ignored; numeric strings that fail to parse are treated
// as not present rather than zero.
func ParseEventMetadata(raw map[string]string) EventMetadata {
	var md EventMetadata
	if raw == nil {
		return md
	}
	if v, ok := raw["timeOnPage"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			md.TimeOnPage = &f
		}
	}
	if v, ok := raw["scrollDepth"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			md.ScrollDepth = &f
		}
	}
	md.Platform = raw["platform"]
	md.ClientID = raw["client_id"]
	return md
}

// RawMap converts typed metadata back into the string map shape the event
// table stores.
func (m EventMetadata) RawMap() map[string]string {
	raw := make(map[string]string)
	if m.TimeOnPage != nil {
		raw["timeOnPage"] = strconv.FormatFloat(*m.TimeOnPage, 'f', -1, 64)
	}
	if m.ScrollDepth != nil {
		raw["scrollDepth"] = strconv.FormatFloat(*m.ScrollDepth, 'f', -1, 64)
	}
	if m.Platform != "" {
		raw["platform"] = m.Platform
	}
	if m.ClientID != "" {
		raw["client_id"] = m.ClientID
	}
	return raw
}

// ContentInfo is the normalized result of a content-collection lookup.
// Collections disagree on the label field (title vs name) and on whether a
// slug exists; the store flattens that into this shape.
type ContentInfo struct {
	Title  string `json:"title"`
	Slug   string `json:"slug,omitempty"`
	Status string `json:"status"`
}
