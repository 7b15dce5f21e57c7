package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeFetcher struct {
	transcript string
	fetchErr   error
	metadata   *VideoMetadata
	fetchCalls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.transcript, nil
}

func (f *fakeFetcher) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if f.metadata == nil {
		return nil, errors.New("no metadata")
	}
	return f.metadata, nil
}

// fakeDownloader writes a real file so cleanup behavior can be observed
type fakeDownloader struct {
	dir     string
	created string
	err     error
}

func (d *fakeDownloader) Audio(ctx context.Context, youtubeURL string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	path := filepath.Join(d.dir, "audio.mp3")
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		return "", err
	}
	d.created = path
	return path, nil
}

type fakeProcessor struct {
	results      map[Mode]string
	errs         map[Mode]error
	prepareCalls int
	gotModes     []Mode
	gotStyles    []string
}

func (p *fakeProcessor) Prepare(ctx context.Context, source ContentSource) (*PreparedSource, error) {
	p.prepareCalls++
	return &PreparedSource{source: source}, nil
}

func (p *fakeProcessor) Process(ctx context.Context, prepared *PreparedSource, mode Mode, style string, metadata *VideoMetadata) (string, error) {
	p.gotModes = append(p.gotModes, mode)
	p.gotStyles = append(p.gotStyles, style)
	if err := p.errs[mode]; err != nil {
		return "", err
	}
	return p.results[mode], nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Quiet:          true,
		Languages:      []string{"vi", "en"},
		TranscriptsDir: t.TempDir(),
		CacheDir:       t.TempDir(),
		ConfigDir:      t.TempDir(),
	}
}

const testVideoID = "dQw4w9WgXcQ"

func TestSummarizeFromCaptions(t *testing.T) {
	fetcher := &fakeFetcher{transcript: "transcript text"}
	processor := &fakeProcessor{results: map[Mode]string{ModeSummary: "- tóm tắt"}}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithProcessor(processor))

	got, err := app.Summarize(context.Background(), testVideoID, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "- tóm tắt" {
		t.Errorf("Summarize = %q", got)
	}
	if len(processor.gotModes) != 1 || processor.gotModes[0] != ModeSummary {
		t.Errorf("modes = %v, want [summary]", processor.gotModes)
	}
}

func TestSummarizeInvalidArg(t *testing.T) {
	app := NewApp(testConfig(t), WithCaptions(&fakeFetcher{}), WithProcessor(&fakeProcessor{}))

	_, err := app.Summarize(context.Background(), "not a video", false)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Summarize error = %v, want ErrInvalidInput", err)
	}
}

func TestSummarizeUsesCachedTranscript(t *testing.T) {
	config := testConfig(t)
	if err := SaveTranscript(testVideoID, "cached transcript", config.TranscriptsDir); err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{fetchErr: errors.New("network down")}
	processor := &fakeProcessor{results: map[Mode]string{ModeSummary: "ok"}}
	app := NewApp(config, WithCaptions(fetcher), WithProcessor(processor))

	if _, err := app.Summarize(context.Background(), testVideoID, false); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if fetcher.fetchCalls != 0 {
		t.Errorf("Fetch called %d times despite cached transcript", fetcher.fetchCalls)
	}
}

func TestWriteScriptPassesStyle(t *testing.T) {
	fetcher := &fakeFetcher{transcript: "transcript text"}
	processor := &fakeProcessor{results: map[Mode]string{ModeRewrite: "kịch bản"}}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithProcessor(processor))

	got, err := app.WriteScript(context.Background(), testVideoID, "Kịch tính & Giật gân", false)
	if err != nil {
		t.Fatalf("WriteScript: %v", err)
	}
	if got != "kịch bản" {
		t.Errorf("WriteScript = %q", got)
	}
	if len(processor.gotStyles) != 1 || processor.gotStyles[0] != "Kịch tính & Giật gân" {
		t.Errorf("styles = %v", processor.gotStyles)
	}
}

func TestRemixAudioFallbackCleansUpFile(t *testing.T) {
	fetcher := &fakeFetcher{fetchErr: ErrNoCaptions}
	downloader := &fakeDownloader{dir: t.TempDir()}
	processor := &fakeProcessor{
		errs: map[Mode]error{
			ModeSummary: ErrServiceFailed,
			ModeRewrite: ErrServiceFailed,
		},
	}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithDownloader(downloader), WithProcessor(processor))

	err := app.Remix(context.Background(), testVideoID, Styles[0], true)
	if err == nil {
		t.Fatal("Remix: want error when both generations fail")
	}

	if downloader.created == "" {
		t.Fatal("audio fallback never downloaded")
	}
	if FileExists(downloader.created) {
		t.Errorf("downloaded audio %s left behind", downloader.created)
	}
}

func TestRemixScriptSurvivesSummaryFailure(t *testing.T) {
	fetcher := &fakeFetcher{transcript: "transcript text"}
	processor := &fakeProcessor{
		results: map[Mode]string{ModeRewrite: "kịch bản"},
		errs:    map[Mode]error{ModeSummary: ErrServiceFailed},
	}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithProcessor(processor))

	err := app.Remix(context.Background(), testVideoID, Styles[0], false)
	if !errors.Is(err, ErrServiceFailed) {
		t.Fatalf("Remix error = %v, want ErrServiceFailed", err)
	}

	// The summary failure must not stop the script generation.
	want := []Mode{ModeSummary, ModeRewrite}
	if len(processor.gotModes) != len(want) {
		t.Fatalf("modes = %v, want %v", processor.gotModes, want)
	}
	for i := range want {
		if processor.gotModes[i] != want[i] {
			t.Errorf("mode[%d] = %v, want %v", i, processor.gotModes[i], want[i])
		}
	}
	if processor.prepareCalls != 1 {
		t.Errorf("Prepare called %d times, want 1", processor.prepareCalls)
	}
}

func TestAcquireSourceDeclinedFallback(t *testing.T) {
	original := AskUser
	AskUser = func(prompt string) bool { return false }
	defer func() { AskUser = original }()

	fetcher := &fakeFetcher{fetchErr: ErrNoCaptions}
	downloader := &fakeDownloader{dir: t.TempDir()}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithDownloader(downloader), WithProcessor(&fakeProcessor{}))

	_, err := app.Summarize(context.Background(), testVideoID, false)
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("Summarize error = %v, want ErrContentUnavailable", err)
	}
	if downloader.created != "" {
		t.Error("audio downloaded after user declined")
	}
}

// recordingUI captures verbose output for assertions
type recordingUI struct {
	verbose []string
}

func (ui *recordingUI) NewSpinner(description string) ProgressBar { return noopBar{} }

func (ui *recordingUI) Verbose(format string, args ...interface{}) {
	ui.verbose = append(ui.verbose, fmt.Sprintf(format, args...))
}

func (ui *recordingUI) Printf(format string, args ...interface{}) {}

func (ui *recordingUI) Println(args ...interface{}) {}

type noopBar struct{}

func (noopBar) Advance() {}

func (noopBar) Describe(description string) {}

func (noopBar) Finish() {}

func TestRemixVerboseShowsTranscriptExcerpt(t *testing.T) {
	fetcher := &fakeFetcher{transcript: "nội dung video gốc"}
	processor := &fakeProcessor{results: map[Mode]string{
		ModeSummary: "- tóm tắt",
		ModeRewrite: "kịch bản",
	}}
	ui := &recordingUI{}
	app := NewApp(testConfig(t), WithCaptions(fetcher), WithProcessor(processor), WithUI(ui))

	if err := app.Remix(context.Background(), testVideoID, Styles[0], false); err != nil {
		t.Fatalf("Remix: %v", err)
	}

	found := false
	for _, line := range ui.verbose {
		if strings.Contains(line, "nội dung video gốc") {
			found = true
		}
	}
	if !found {
		t.Errorf("verbose output missing transcript excerpt: %v", ui.verbose)
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("â", 600)
	got := excerpt(long, 500)
	if len([]rune(got)) != 503 {
		t.Errorf("excerpt length = %d runes, want 503", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt not marked as truncated: %q", got[len(got)-10:])
	}
	if excerpt("ngắn", 500) != "ngắn" {
		t.Error("short text must pass through unchanged")
	}
}

func TestMetadataCaching(t *testing.T) {
	config := testConfig(t)
	fetcher := &fakeFetcher{metadata: &VideoMetadata{Title: "Video Title", Channel: "Channel"}}
	app := NewApp(config, WithCaptions(fetcher), WithProcessor(&fakeProcessor{}))

	first, err := app.Metadata(context.Background(), testVideoID)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	// Second call should come from the cache even if the fetcher breaks.
	fetcher.metadata = nil
	second, err := app.Metadata(context.Background(), testVideoID)
	if err != nil {
		t.Fatalf("cached Metadata: %v", err)
	}
	if second.Title != first.Title || second.Channel != first.Channel {
		t.Errorf("cached metadata = %+v, want %+v", second, first)
	}
}
