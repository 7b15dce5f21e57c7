package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AskUser is a variable that holds the function for asking user confirmation
// This allows it to be replaced in tests
var AskUser = func(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return strings.HasPrefix(response, "y")
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	return false
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dir ...string) error {
	for _, dir := range dir {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanupFiles removes temporary files
func cleanupFiles(files ...string) {
	for _, file := range files {
		if file == "" || !FileExists(file) {
			continue
		}
		if err := os.Remove(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove file %s: %v\n", file, err)
		}
	}
}

// excerpt returns at most max leading runes of s, marking truncation
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// SaveTranscript saves a transcript to the specified directory with standard error handling
func SaveTranscript(videoID, transcript, transcriptsDir string) error {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// LoadCachedTranscript returns a previously saved transcript, if any
func LoadCachedTranscript(videoID, transcriptsDir string) (string, bool) {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".txt")
	if !FileExists(transcriptPath) {
		return "", false
	}
	text, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", false
	}
	return string(text), true
}

// cachedVideoMetadata extends VideoMetadata with cache information
type cachedVideoMetadata struct {
	VideoMetadata
	CachedAt time.Time `json:"cached_at"`
}

// SaveMetadata saves video metadata to cache as JSON
func SaveMetadata(videoID string, metadata *VideoMetadata, transcriptsDir string) error {
	cached := cachedVideoMetadata{
		VideoMetadata: *metadata,
		CachedAt:      time.Now(),
	}

	metadataPath := filepath.Join(transcriptsDir, videoID+".meta.json")
	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	return nil
}

// LoadCachedMetadata loads video metadata from cache
func LoadCachedMetadata(videoID, transcriptsDir string) (*VideoMetadata, error) {
	metadataPath := filepath.Join(transcriptsDir, videoID+".meta.json")

	if !FileExists(metadataPath) {
		return nil, fmt.Errorf("metadata cache not found")
	}

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata cache: %w", err)
	}

	var cached cachedVideoMetadata
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing metadata cache: %w", err)
	}

	metadata := cached.VideoMetadata
	return &metadata, nil
}
