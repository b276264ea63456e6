package service

import "strings"

// ParseUserAgent reduces a raw User-Agent string to coarse browser and
// platform families, which is all the analytics aggregation keys on.
// Order matters: Chrome ships "Safari" in its UA, Edge ships both.
func ParseUserAgent(raw string) (browser, platform string) {
	ua := strings.ToLower(raw)

	switch {
	case raw == "":
		browser = "Unknown"
	case strings.Contains(ua, "edg/"), strings.Contains(ua, "edge/"):
		browser = "Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		browser = "Opera"
	case strings.Contains(ua, "firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "chrome/"), strings.Contains(ua, "crios/"):
		browser = "Chrome"
	case strings.Contains(ua, "safari/"):
		browser = "Safari"
	case strings.Contains(ua, "msie"), strings.Contains(ua, "trident/"):
		browser = "IE"
	case strings.Contains(ua, "bot"), strings.Contains(ua, "crawler"), strings.Contains(ua, "spider"):
		browser = "Bot"
	default:
		browser = "Other"
	}

	switch {
	case raw == "":
		platform = "Unknown"
	case strings.Contains(ua, "android"):
		platform = "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ios"):
		platform = "iOS"
	case strings.Contains(ua, "windows"):
		platform = "Windows"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macintosh"):
		platform = "macOS"
	case strings.Contains(ua, "linux"):
		platform = "Linux"
	default:
		platform = "Other"
	}

	return browser, platform
}
