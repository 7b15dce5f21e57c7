package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// TranscriptFetcher retrieves captions and video details
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
	Metadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// AudioDownloader produces a local audio file for a video URL
type AudioDownloader interface {
	Audio(ctx context.Context, youtubeURL string) (string, error)
}

// ContentProcessor turns a content source into generated text
type ContentProcessor interface {
	Prepare(ctx context.Context, source ContentSource) (*PreparedSource, error)
	Process(ctx context.Context, prepared *PreparedSource, mode Mode, style string, metadata *VideoMetadata) (string, error)
}

// App holds the application state and dependencies
type App struct {
	captions   TranscriptFetcher
	downloader AudioDownloader
	processor  ContentProcessor
	prompts    *PromptManager
	config     *Config
	ui         UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	prompts := NewPromptManager(config.ConfigDir)

	app := &App{
		captions:   NewCaptions(config.Languages, config.Verbose),
		downloader: NewDownloader(config.CacheDir, config.Verbose),
		processor:  NewProcessorWithKey(config.GeminiAPIKey, config.GeminiModel, prompts, config.SummaryTimeout, config.UploadTimeout, config.Verbose),
		prompts:    prompts,
		config:     config,
		ui:         NewUIManager(config.Verbose, config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithCaptions sets a custom transcript fetcher
func WithCaptions(captions TranscriptFetcher) AppOption {
	return func(a *App) {
		a.captions = captions
	}
}

// WithDownloader sets a custom audio downloader
func WithDownloader(downloader AudioDownloader) AppOption {
	return func(a *App) {
		a.downloader = downloader
	}
}

// WithProcessor sets a custom content processor
func WithProcessor(processor ContentProcessor) AppOption {
	return func(a *App) {
		a.processor = processor
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// Prompts returns the prompt manager for flag overrides
func (app *App) Prompts() *PromptManager {
	return app.prompts
}

// Metadata gets video metadata (cached or fresh). Failures are not fatal to
// a run; metadata only enriches prompts and status output.
func (app *App) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if cached, err := LoadCachedMetadata(videoID, app.config.TranscriptsDir); err == nil {
		app.ui.Verbose("Using cached metadata for %s\n", videoID)
		return cached, nil
	}

	metadata, err := app.captions.Metadata(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := EnsureDirs(app.config.TranscriptsDir); err == nil {
		if err := SaveMetadata(videoID, metadata, app.config.TranscriptsDir); err != nil {
			app.ui.Verbose("Warning: failed to cache metadata: %v\n", err)
		}
	}

	return metadata, nil
}

// GetTranscript gets a transcript from YouTube captions (cached or fetched)
func (app *App) GetTranscript(ctx context.Context, videoID string) (string, error) {
	return app.GetTranscriptWithStatus(ctx, videoID, false)
}

// GetTranscriptWithStatus gets a transcript with an optional status spinner
func (app *App) GetTranscriptWithStatus(ctx context.Context, videoID string, showStatus bool) (string, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Checking for existing captions...")
		defer spinner.Finish()
	}

	if err := EnsureDirs(app.config.TranscriptsDir); err != nil {
		return "", fmt.Errorf("creating transcripts directory: %w", err)
	}

	if text, ok := LoadCachedTranscript(videoID, app.config.TranscriptsDir); ok {
		if spinner != nil {
			spinner.Describe("Found cached transcript")
		}
		app.ui.Verbose("Found existing transcript for %s\n", videoID)
		return text, nil
	}

	if spinner != nil {
		spinner.Describe("Fetching YouTube captions...")
		spinner.Advance()
	}

	transcript, err := app.captions.Fetch(ctx, videoID)
	if err != nil {
		return "", err
	}

	if err := SaveTranscript(videoID, transcript, app.config.TranscriptsDir); err != nil {
		app.ui.Verbose("Warning: %v\n", err)
	}

	return transcript, nil
}

// DownloadAudio downloads the audio track and returns the file path.
// The caller owns the file.
func (app *App) DownloadAudio(ctx context.Context, videoID string) (string, error) {
	audioFile, err := app.downloader.Audio(ctx, WatchURL(videoID))
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	return audioFile, nil
}

// TranscribeAudio asks Gemini for a verbatim transcription of a local audio file
func (app *App) TranscribeAudio(ctx context.Context, audioFile string) (string, error) {
	prepared, err := app.processor.Prepare(ctx, AudioSource(audioFile))
	if err != nil {
		return "", err
	}
	defer prepared.Close(ctx)

	return app.processor.Process(ctx, prepared, ModeTranscribe, "", nil)
}

// acquireSource implements the captions-first, audio-second fallback. The
// returned cleanup must run on every exit path of the caller; it removes
// the downloaded audio file, if one was created.
func (app *App) acquireSource(ctx context.Context, videoID string, fallbackAudio bool) (ContentSource, func(), error) {
	noop := func() {}

	showStatus := !app.config.Quiet
	transcript, err := app.GetTranscriptWithStatus(ctx, videoID, showStatus)
	if err == nil {
		return TextSource(transcript), noop, nil
	}

	if !errors.Is(err, ErrNoCaptions) {
		// Transient caption failure; still worth trying the audio route,
		// but say what happened.
		app.ui.Verbose("Caption fetch failed: %v\n", err)
	}

	if !fallbackAudio {
		if !AskUser("No captions available. Process the audio track with Gemini instead?") {
			return ContentSource{}, noop, fmt.Errorf("%w: audio fallback declined by user", ErrContentUnavailable)
		}
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Downloading audio...")
		defer spinner.Finish()
	}

	audioFile, err := app.DownloadAudio(ctx, videoID)
	if err != nil {
		return ContentSource{}, noop, err
	}

	return AudioSource(audioFile), func() { cleanupFiles(audioFile) }, nil
}

// Summarize produces the bullet-point summary for a video
func (app *App) Summarize(ctx context.Context, arg string, fallbackAudio bool) (string, error) {
	_, videoID, err := ParseArg(arg)
	if err != nil {
		return "", err
	}

	source, cleanup, err := app.acquireSource(ctx, videoID, fallbackAudio)
	if err != nil {
		return "", err
	}
	defer cleanup()

	metadata, err := app.Metadata(ctx, videoID)
	if err != nil {
		app.ui.Verbose("Failed to fetch video metadata: %v\n", err)
	}

	prepared, err := app.processor.Prepare(ctx, source)
	if err != nil {
		return "", err
	}
	defer prepared.Close(ctx)

	return app.processor.Process(ctx, prepared, ModeSummary, "", metadata)
}

// WriteScript produces the restyled short-form script for a video
func (app *App) WriteScript(ctx context.Context, arg, style string, fallbackAudio bool) (string, error) {
	_, videoID, err := ParseArg(arg)
	if err != nil {
		return "", err
	}

	source, cleanup, err := app.acquireSource(ctx, videoID, fallbackAudio)
	if err != nil {
		return "", err
	}
	defer cleanup()

	metadata, err := app.Metadata(ctx, videoID)
	if err != nil {
		app.ui.Verbose("Failed to fetch video metadata: %v\n", err)
	}

	prepared, err := app.processor.Prepare(ctx, source)
	if err != nil {
		return "", err
	}
	defer prepared.Close(ctx)

	return app.processor.Process(ctx, prepared, ModeRewrite, style, metadata)
}

// Remix performs the complete workflow: acquire content, summarize it, then
// rewrite it as a short-form script in the requested style. The content
// source is prepared once and reused for both generation calls; a failure
// in one call is reported without discarding the output of the other.
func (app *App) Remix(ctx context.Context, arg, style string, fallbackAudio bool) error {
	_, videoID, err := ParseArg(arg)
	if err != nil {
		return err
	}

	metadata, err := app.Metadata(ctx, videoID)
	if err != nil {
		app.ui.Verbose("Failed to fetch video metadata: %v\n", err)
	}
	if metadata != nil {
		app.ui.Printf("%s — %s\n\n", metadata.Title, metadata.Channel)
	}

	source, cleanup, err := app.acquireSource(ctx, videoID, fallbackAudio)
	if err != nil {
		return err
	}
	defer cleanup()

	if source.Kind == SourceText {
		app.ui.Verbose("Transcript (%d chars):\n%s\n\n", len(source.Text), excerpt(source.Text, 500))
	}

	prepared, err := app.processor.Prepare(ctx, source)
	if err != nil {
		return err
	}
	defer prepared.Close(ctx)

	summary, summaryErr := app.processor.Process(ctx, prepared, ModeSummary, "", metadata)
	if summaryErr != nil {
		fmt.Fprintf(os.Stderr, "Error: generating summary: %v\n", summaryErr)
	} else {
		app.printSection("📝 Tóm tắt nội dung", summary)
	}

	script, scriptErr := app.processor.Process(ctx, prepared, ModeRewrite, style, metadata)
	if scriptErr != nil {
		fmt.Fprintf(os.Stderr, "Error: writing script: %v\n", scriptErr)
	} else {
		app.printSection("🎬 Kịch bản mới", script)
	}

	return errors.Join(summaryErr, scriptErr)
}

// printSection renders a markdown block with a heading
func (app *App) printSection(heading, content string) {
	rendered, err := RenderMarkdown("## " + heading + "\n\n" + content)
	if err != nil {
		// Fall back to plain text if the terminal renderer fails.
		fmt.Printf("%s\n\n%s\n", heading, content)
		return
	}
	fmt.Println(rendered)
}
