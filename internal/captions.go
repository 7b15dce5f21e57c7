package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	youtube "github.com/kkdai/youtube/v2"
)

// VideoMetadata contains YouTube video information
type VideoMetadata struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Channel     string  `json:"channel"`
	Duration    float64 `json:"duration"`
	Thumbnail   string  `json:"thumbnail"`
	HasCaptions bool    `json:"has_captions"`
}

// captionAPI is the part of the youtube client the fetcher uses.
// *youtube.Client satisfies it; tests substitute a fake.
type captionAPI interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// Captions fetches existing caption tracks for a video
type Captions struct {
	api       captionAPI
	languages []string
	verbose   bool
}

// NewCaptions creates a caption fetcher with a language preference order
func NewCaptions(languages []string, verbose bool) *Captions {
	return &Captions{
		api:       &youtube.Client{},
		languages: languages,
		verbose:   verbose,
	}
}

// newCaptionsWithAPI is used by tests to inject a fake client
func newCaptionsWithAPI(api captionAPI, languages []string) *Captions {
	return &Captions{api: api, languages: languages}
}

// Metadata fetches video details
func (c *Captions) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	video, err := c.api.GetVideoContext(ctx, WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("fetching video info: %w", err)
	}

	if c.verbose {
		fmt.Printf("Title: %s\n", video.Title)
		fmt.Printf("Channel: %s\n", video.Author)
		fmt.Printf("Duration: %.0f seconds\n", video.Duration.Seconds())
	}

	return &VideoMetadata{
		Title:       video.Title,
		Description: video.Description,
		Channel:     video.Author,
		Duration:    video.Duration.Seconds(),
		Thumbnail:   ThumbnailURL(videoID),
		HasCaptions: len(video.CaptionTracks) > 0,
	}, nil
}

// Fetch retrieves the caption track for a video in the preferred-language
// order and returns the segment texts space-joined in original order.
// Missing, disabled or empty tracks yield ErrNoCaptions so the caller can
// fall back to audio; other failures are returned as-is.
func (c *Captions) Fetch(ctx context.Context, videoID string) (string, error) {
	video, err := c.api.GetVideoContext(ctx, WatchURL(videoID))
	if err != nil {
		return "", fmt.Errorf("fetching video info: %w", err)
	}

	if len(video.CaptionTracks) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoCaptions, videoID)
	}

	var lastErr error
	for _, lang := range c.languages {
		if !hasCaptionTrack(video, lang) {
			continue
		}

		transcript, err := c.api.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			if errors.Is(err, youtube.ErrTranscriptDisabled) {
				return "", fmt.Errorf("%w for %s", ErrNoCaptions, videoID)
			}
			lastErr = err
			continue
		}

		text := joinSegments(transcript)
		if text == "" {
			// A track that exists but carries no text counts as unavailable.
			continue
		}

		if c.verbose {
			fmt.Printf("Fetched %q captions for %s (%d segments)\n", lang, videoID, len(transcript))
		}
		return text, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("fetching captions: %w", lastErr)
	}
	return "", fmt.Errorf("%w for %s", ErrNoCaptions, videoID)
}

// hasCaptionTrack reports whether the video has a track for the language,
// matching region variants like "en-US" against "en".
func hasCaptionTrack(video *youtube.Video, lang string) bool {
	for _, track := range video.CaptionTracks {
		if track.LanguageCode == lang || strings.HasPrefix(track.LanguageCode, lang+"-") {
			return true
		}
	}
	return false
}

// joinSegments concatenates segment texts space-joined, preserving order
func joinSegments(transcript youtube.VideoTranscript) string {
	parts := make([]string, 0, len(transcript))
	for _, segment := range transcript {
		text := strings.TrimSpace(segment.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
