package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// videoIDPattern matches the 11-character video token after a v= query
// parameter or a path separator, the same way YouTube links carry it in
// watch, youtu.be, embed and shorts forms.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&/#]|$)`)

// ExtractVideoID derives the video ID from a YouTube URL. A bare 11-character
// ID is accepted as-is. Non-conforming input yields ErrInvalidInput; there is
// no partial recovery. Whether the ID names a real video is left to the
// downstream services.
func ExtractVideoID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	if IsValidVideoID(arg) {
		return arg, nil
	}

	match := videoIDPattern.FindStringSubmatch(arg)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, arg)
	}
	return match[1], nil
}

// IsValidVideoID checks if a string looks like a YouTube video ID.
func IsValidVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the default thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", videoID)
}

// ParseArg normalizes a command line argument into a watch URL and video ID.
func ParseArg(arg string) (string, string, error) {
	id, err := ExtractVideoID(arg)
	if err != nil {
		return "", "", err
	}
	return WatchURL(id), id, nil
}
