package internal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
)

// Downloader extracts audio tracks from YouTube videos using yt-dlp
type Downloader struct {
	cacheDir string
	verbose  bool
}

// NewDownloader creates a new audio downloader
func NewDownloader(cacheDir string, verbose bool) *Downloader {
	return &Downloader{cacheDir: cacheDir, verbose: verbose}
}

// Audio downloads the best available audio track transcoded to a 128 kbps
// mp3 and returns the file path. Each run gets a unique filename so
// concurrent runs on the same video cannot clobber each other's file; the
// caller owns the file and must remove it when done.
func (d *Downloader) Audio(ctx context.Context, youtubeURL string) (string, error) {
	if d.verbose {
		fmt.Println("Downloading audio...")
	}

	videoID, err := ExtractVideoID(youtubeURL)
	if err != nil {
		return "", err
	}

	if err := EnsureDirs(d.cacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	// Per-run unique path; no stale file from a prior run can exist here.
	basename := fmt.Sprintf("%s-%s", videoID, uuid.NewString())
	outputPath := filepath.Join(d.cacheDir, basename+".%(ext)s")

	dl := ytdlp.New().
		Format("bestaudio").  // Select best audio format
		ExtractAudio().       // Extract audio from video
		AudioFormat("mp3").   // Convert to MP3 format
		AudioQuality("128K"). // Target bitrate
		NoPlaylist().         // Single video only
		Output(outputPath)

	result, err := dl.Run(ctx, youtubeURL)
	if err != nil {
		if d.verbose && result != nil {
			fmt.Printf("Audio download error: %v\n", err)
			fmt.Printf("Stderr: %s\n", result.Stderr)
		}
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if d.verbose {
		fmt.Println("Audio download completed successfully")
	}

	return filepath.Join(d.cacheDir, basename+".mp3"), nil
}
