// api/analytics/classifier.go
package analytics

import (
	"net/url"
	"strings"
)

// Device buckets produced by ClassifyDevice.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceBot     = "Bot"
	DeviceDesktop = "Desktop"
	DeviceUnknown = "Unknown"
)

const (
	referrerDirect   = "Direct"
	referrerExternal = "External"
)

var mobileMarkers = []string{"mobile", "android", "iphone", "ipod", "windows phone"}
var tabletMarkers = []string{"tablet", "ipad", "kindle", "silk"}
var botMarkers = []string{"bot", "crawler", "spider", "slurp", "headless"}
var desktopMarkers = []string{"mozilla", "macintosh", "windows nt", "x11", "linux"}

// ClassifyDevice buckets a raw user-agent string. Matching is case-insensitive
// substring search, checked in priority order Mobile, Tablet, Bot, Desktop,
// so an iPad UA containing "Mobile" still lands in Mobile. Empty input is
// Unknown. Never panics on malformed input.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return DeviceUnknown
	}
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return DeviceMobile
		}
	}
	for _, m := range tabletMarkers {
		if strings.Contains(ua, m) {
			return DeviceTablet
		}
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return DeviceBot
		}
	}
	for _, m := range desktopMarkers {
		if strings.Contains(ua, m) {
			return DeviceDesktop
		}
	}
	return DeviceUnknown
}

// ReferrerPolicy decides what an unparsable referrer string classifies as.
// The overview report and the public summary intentionally disagree here and
// downstream consumers depend on each behavior, so both are kept as distinct
// named policies.
type ReferrerPolicy func(referrer string) string

// SourceOrExternal is the public-summary policy: hostname with a leading
// "www." stripped, "Direct" when empty, "External" when the referrer does not
// parse as a URL with a host.
func SourceOrExternal(referrer string) string {
	if src, ok := referrerHost(referrer); ok {
		return src
	}
	if strings.TrimSpace(referrer) == "" {
		return referrerDirect
	}
	return referrerExternal
}

// SourceOrRaw is the overview policy: same as SourceOrExternal except an
// unparsable referrer is passed through verbatim.
func SourceOrRaw(referrer string) string {
	if src, ok := referrerHost(referrer); ok {
		return src
	}
	if strings.TrimSpace(referrer) == "" {
		return referrerDirect
	}
	return referrer
}

// referrerHost parses the referrer and returns its hostname without the
// "www." prefix. ok is false for empty input or anything url.Parse cannot
// extract a host from.
func referrerHost(referrer string) (string, bool) {
	ref := strings.TrimSpace(referrer)
	if ref == "" {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return strings.TrimPrefix(u.Hostname(), "www."), true
}
