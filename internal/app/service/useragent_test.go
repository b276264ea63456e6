package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		browser  string
		platform string
	}{
		{
			name:     "chrome on windows",
			raw:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			browser:  "Chrome",
			platform: "Windows",
		},
		{
			name:     "firefox on linux",
			raw:      "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			browser:  "Firefox",
			platform: "Linux",
		},
		{
			name:     "safari on mac",
			raw:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
			browser:  "Safari",
			platform: "macOS",
		},
		{
			name:     "edge claims chrome and safari",
			raw:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0",
			browser:  "Edge",
			platform: "Windows",
		},
		{
			name:     "opera claims chrome",
			raw:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 OPR/112.0.0.0",
			browser:  "Opera",
			platform: "Windows",
		},
		{
			name:     "chrome on ios",
			raw:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/126.0.0.0 Mobile/15E148 Safari/604.1",
			browser:  "Chrome",
			platform: "iOS",
		},
		{
			name:     "chrome on android",
			raw:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36",
			browser:  "Chrome",
			platform: "Android",
		},
		{
			name:     "internet explorer",
			raw:      "Mozilla/5.0 (Windows NT 6.1; Trident/7.0; rv:11.0) like Gecko",
			browser:  "IE",
			platform: "Windows",
		},
		{
			name:     "crawler",
			raw:      "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			browser:  "Bot",
			platform: "Other",
		},
		{
			name:     "empty",
			raw:      "",
			browser:  "Unknown",
			platform: "Unknown",
		},
		{
			name:     "curl",
			raw:      "curl/8.7.1",
			browser:  "Other",
			platform: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, platform := ParseUserAgent(tt.raw)
			assert.Equal(t, tt.browser, browser)
			assert.Equal(t, tt.platform, platform)
		})
	}
}
