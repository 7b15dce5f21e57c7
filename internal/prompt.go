package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	Title   string
	Channel string
	Style   string
}

// promptFiles maps each mode to its template file in the config directory.
var promptFiles = map[Mode]string{
	ModeSummary:    "summary_prompt.txt",
	ModeRewrite:    "script_prompt.txt",
	ModeTranscribe: "transcribe_prompt.txt",
}

// PromptManager loads and renders the instruction templates
type PromptManager struct {
	configDir string
	overrides map[Mode]string
}

// NewPromptManager creates a new prompt manager
func NewPromptManager(configDir string) *PromptManager {
	return &PromptManager{
		configDir: configDir,
		overrides: make(map[Mode]string),
	}
}

// SetOverride replaces the template for a mode with a custom string or the
// contents of a file, depending on what the value looks like.
func (pm *PromptManager) SetOverride(mode Mode, value string) error {
	if IsLikelyFilePath(value) && FileExists(value) {
		content, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("reading prompt file: %w", err)
		}
		pm.overrides[mode] = string(content)
		return nil
	}
	pm.overrides[mode] = value
	return nil
}

// Instruction builds the instruction text for a mode. Style is interpolated
// verbatim into the rewrite template; it is ignored by the other modes.
func (pm *PromptManager) Instruction(mode Mode, style string, metadata *VideoMetadata) (string, error) {
	tmplContent, err := pm.templateContent(mode)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("prompt").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	data := PromptData{Style: style}
	if metadata != nil {
		data.Title = metadata.Title
		data.Channel = metadata.Channel
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// templateContent returns the override, the file from the config directory,
// or the embedded default, in that order.
func (pm *PromptManager) templateContent(mode Mode) (string, error) {
	if override, ok := pm.overrides[mode]; ok && override != "" {
		return override, nil
	}

	filename, ok := promptFiles[mode]
	if !ok {
		return "", fmt.Errorf("no prompt template for mode %s", mode)
	}

	promptFile := filepath.Join(pm.configDir, filename)
	if FileExists(promptFile) {
		content, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
		return string(content), nil
	}

	content, err := defaultFS.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading embedded prompt template: %w", err)
	}
	return string(content), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// If it's longer than 200 characters, it's likely a prompt string
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
