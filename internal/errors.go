package internal

import "errors"

// Error kinds surfaced by the pipeline. Callers match with errors.Is to
// decide whether a failure is terminal or warrants a fallback.
var (
	// ErrInvalidInput means the argument is not a YouTube video URL or ID.
	ErrInvalidInput = errors.New("invalid YouTube URL or video ID")

	// ErrNoCaptions means the video has no usable caption track in any of
	// the preferred languages. The audio fallback is the next step.
	ErrNoCaptions = errors.New("no captions available")

	// ErrContentUnavailable means neither captions nor audio could be obtained.
	ErrContentUnavailable = errors.New("no transcript and no audio available")

	// ErrDownloadFailed means yt-dlp could not produce the audio file.
	ErrDownloadFailed = errors.New("audio download failed")

	// ErrServiceFailed means a Gemini API call failed (bad key, quota,
	// malformed request, network).
	ErrServiceFailed = errors.New("generation service error")

	// ErrTimeout means the uploaded file did not become ready within the
	// configured upload timeout.
	ErrTimeout = errors.New("timed out waiting for upload processing")
)
