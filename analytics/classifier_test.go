package analytics

import "testing"

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "empty user agent",
			userAgent: "",
			expected:  DeviceUnknown,
		},
		{
			name:      "whitespace only",
			userAgent: "   ",
			expected:  DeviceUnknown,
		},
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
			expected:  DeviceMobile,
		},
		{
			name:      "android phone",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36",
			expected:  DeviceMobile,
		},
		{
			name:      "ipad",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
			expected:  DeviceTablet,
		},
		{
			name:      "googlebot",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			expected:  DeviceBot,
		},
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0",
			expected:  DeviceDesktop,
		},
		{
			name:      "unrecognized string",
			userAgent: "curl/8.0.1",
			expected:  DeviceUnknown,
		},
		{
			name:      "mobile beats bot when both match",
			userAgent: "SomeBot Mobile/1.0",
			expected:  DeviceMobile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDevice(tt.userAgent); got != tt.expected {
				t.Errorf("ClassifyDevice(%q) = %q, want %q", tt.userAgent, got, tt.expected)
			}
		})
	}
}

func TestReferrerPolicies(t *testing.T) {
	tests := []struct {
		name         string
		referrer     string
		wantExternal string
		wantRaw      string
	}{
		{
			name:         "empty is direct under both policies",
			referrer:     "",
			wantExternal: "Direct",
			wantRaw:      "Direct",
		},
		{
			name:         "www prefix stripped",
			referrer:     "https://www.google.com/search?q=x",
			wantExternal: "google.com",
			wantRaw:      "google.com",
		},
		{
			name:         "plain hostname kept",
			referrer:     "https://news.ycombinator.com/item?id=1",
			wantExternal: "news.ycombinator.com",
			wantRaw:      "news.ycombinator.com",
		},
		{
			name:         "unparsable string diverges by policy",
			referrer:     "not a url",
			wantExternal: "External",
			wantRaw:      "not a url",
		},
		{
			name:         "relative path has no host",
			referrer:     "/internal/page",
			wantExternal: "External",
			wantRaw:      "/internal/page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceOrExternal(tt.referrer); got != tt.wantExternal {
				t.Errorf("SourceOrExternal(%q) = %q, want %q", tt.referrer, got, tt.wantExternal)
			}
			if got := SourceOrRaw(tt.referrer); got != tt.wantRaw {
				t.Errorf("SourceOrRaw(%q) = %q, want %q", tt.referrer, got, tt.wantRaw)
			}
		})
	}
}
