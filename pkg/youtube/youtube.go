// Package youtube turns the links admins paste for matches and highlights into embed URLs.
package youtube

import (
	"regexp"
	"strings"
)

const embedBase = "https://www.youtube.com/embed/"

// Checked in order; the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	// https://www.youtube.com/watch?v=VIDEO_ID (v may follow other params)
	regexp.MustCompile(`youtube\.com/watch\?(?:[^"'\s]*&)?v=([a-zA-Z0-9_-]{11})`),
	// https://youtu.be/VIDEO_ID
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	// embed URL or iframe src, shorts, live
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/(?:embed|shorts|live|v)/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID extracts the YouTube video ID from various URL formats
// Supports:
// - https://www.youtube.com/watch?v=VIDEO_ID
// - https://youtu.be/VIDEO_ID
// - https://www.youtube.com/embed/VIDEO_ID
// - https://www.youtube.com/shorts/VIDEO_ID
// - https://www.youtube.com/live/VIDEO_ID
// - <iframe src="https://www.youtube.com/embed/VIDEO_ID"...>
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(input); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// EmbedURL converts a YouTube link to the standard embed URL, or "" when it does not parse
func EmbedURL(input string) string {
	id := ExtractVideoID(input)
	if id == "" {
		return ""
	}
	return embedBase + id
}
