package models

import "testing"

func TestParseEventMetadata(t *testing.T) {
	md := ParseEventMetadata(map[string]string{
		"timeOnPage":  "12.5",
		"scrollDepth": "80",
		"platform":    "twitter",
		"client_id":   "anon-1",
		"extraneous":  "ignored",
	})

	if md.TimeOnPage == nil || *md.TimeOnPage != 12.5 {
		t.Errorf("TimeOnPage = %v, want 12.5", md.TimeOnPage)
	}
	if md.ScrollDepth == nil || *md.ScrollDepth != 80 {
		t.Errorf("ScrollDepth = %v, want 80", md.ScrollDepth)
	}
	if md.Platform != "twitter" {
		t.Errorf("Platform = %q, want twitter", md.Platform)
	}
	if md.ClientID != "anon-1" {
		t.Errorf("ClientID = %q, want anon-1", md.ClientID)
	}
}

func TestParseEventMetadataMalformedNumbers(t *testing.T) {
	// malformed numerics must parse to "not present", never zero
	md := ParseEventMetadata(map[string]string{
		"timeOnPage":  "a while",
		"scrollDepth": "",
	})
	if md.TimeOnPage != nil {
		t.Errorf("TimeOnPage = %v, want nil for malformed value", *md.TimeOnPage)
	}
	if md.ScrollDepth != nil {
		t.Errorf("ScrollDepth = %v, want nil for malformed value", *md.ScrollDepth)
	}

	if got := ParseEventMetadata(nil); got.TimeOnPage != nil || got.ClientID != "" {
		t.Errorf("nil map should parse to empty metadata, got %+v", got)
	}
}

func TestEventMetadataRawMapRoundTrip(t *testing.T) {
	tp := 7.0
	md := EventMetadata{TimeOnPage: &tp, Platform: "linkedin"}
	raw := md.RawMap()

	if raw["timeOnPage"] != "7" {
		t.Errorf("raw timeOnPage = %q, want 7", raw["timeOnPage"])
	}
	if raw["platform"] != "linkedin" {
		t.Errorf("raw platform = %q, want linkedin", raw["platform"])
	}
	if _, ok := raw["scrollDepth"]; ok {
		t.Error("absent scrollDepth must not appear in the raw map")
	}
}
