package internal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClientInterface defines the interface for Gemini client operations
type GeminiClientInterface interface {
	Generate(ctx context.Context, parts ...genai.Part) (string, error)
	UploadFile(ctx context.Context, path string) (*genai.File, error)
	FileState(ctx context.Context, name string) (genai.FileState, error)
	DeleteFile(ctx context.Context, name string) error
}

// GeminiClient wraps the official Gemini Go SDK
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate implements the content generation method
func (c *GeminiClient) Generate(ctx context.Context, parts ...genai.Part) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// UploadFile registers a local file with the Gemini file service
func (c *GeminiClient) UploadFile(ctx context.Context, path string) (*genai.File, error) {
	return c.client.UploadFileFromPath(ctx, path, nil)
}

// FileState returns the processing state of an uploaded file
func (c *GeminiClient) FileState(ctx context.Context, name string) (genai.FileState, error) {
	file, err := c.client.GetFile(ctx, name)
	if err != nil {
		return genai.FileStateUnspecified, err
	}
	return file.State, nil
}

// DeleteFile removes an uploaded file from the remote service
func (c *GeminiClient) DeleteFile(ctx context.Context, name string) error {
	return c.client.DeleteFile(ctx, name)
}

// Processor turns a content source into generated text via Gemini
type Processor struct {
	client        GeminiClientInterface
	prompts       *PromptManager
	genTimeout    time.Duration
	uploadTimeout time.Duration
	pollInterval  time.Duration
	verbose       bool
	apiKey        string
	model         string
	clientOnce    sync.Once
	clientErr     error
}

// NewProcessor creates a new content processor with an injected client
func NewProcessor(client GeminiClientInterface, prompts *PromptManager, genTimeout, uploadTimeout time.Duration, verbose bool) *Processor {
	return &Processor{
		client:        client,
		prompts:       prompts,
		genTimeout:    genTimeout,
		uploadTimeout: uploadTimeout,
		pollInterval:  PollInterval,
		verbose:       verbose,
	}
}

// NewProcessorWithKey creates a new content processor with lazy client
// initialization so commands that never generate don't need a key
func NewProcessorWithKey(apiKey, model string, prompts *PromptManager, genTimeout, uploadTimeout time.Duration, verbose bool) *Processor {
	return &Processor{
		prompts:       prompts,
		genTimeout:    genTimeout,
		uploadTimeout: uploadTimeout,
		pollInterval:  PollInterval,
		verbose:       verbose,
		apiKey:        apiKey,
		model:         model,
	}
}

// ensureClient initializes the Gemini client if needed
func (p *Processor) ensureClient(ctx context.Context) error {
	if p.client != nil {
		return nil
	}

	if err := ValidateGeminiAPIKey(p.apiKey); err != nil {
		return err
	}

	p.clientOnce.Do(func() {
		client, err := NewGeminiClient(ctx, p.apiKey, p.model)
		if err != nil {
			p.clientErr = err
			return
		}
		p.client = client
	})

	return p.clientErr
}

// PreparedSource is a content source ready for generation. For audio it
// holds the remote file handle, uploaded and polled exactly once, so both
// the summary and the rewrite call reuse the same upload.
type PreparedSource struct {
	source ContentSource
	remote *genai.File
	client GeminiClientInterface
}

// Prepare readies a content source for generation. Text sources pass
// through; audio sources are uploaded and polled until the remote side
// leaves the processing state or the upload timeout expires.
func (p *Processor) Prepare(ctx context.Context, source ContentSource) (*PreparedSource, error) {
	if err := p.ensureClient(ctx); err != nil {
		return nil, err
	}

	if source.Kind != SourceAudio {
		return &PreparedSource{source: source, client: p.client}, nil
	}

	if p.verbose {
		fmt.Printf("Uploading audio file: %s\n", source.Path)
	}

	file, err := p.client.UploadFile(ctx, source.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading audio: %v", ErrServiceFailed, err)
	}

	if err := p.awaitFileActive(ctx, file); err != nil {
		// Best effort: don't leave an unusable file on the remote side.
		if delErr := p.client.DeleteFile(ctx, file.Name); delErr != nil && p.verbose {
			fmt.Printf("Warning: failed to delete remote file %s: %v\n", file.Name, delErr)
		}
		return nil, err
	}

	return &PreparedSource{source: source, remote: file, client: p.client}, nil
}

// awaitFileActive polls the uploaded file until it is ready
func (p *Processor) awaitFileActive(ctx context.Context, file *genai.File) error {
	deadline := time.Now().Add(p.uploadTimeout)
	state := file.State

	for state == genai.FileStateProcessing || state == genai.FileStateUnspecified {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %s", ErrTimeout, p.uploadTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.pollInterval):
		}

		var err error
		state, err = p.client.FileState(ctx, file.Name)
		if err != nil {
			return fmt.Errorf("%w: checking upload state: %v", ErrServiceFailed, err)
		}
	}

	if state != genai.FileStateActive {
		return fmt.Errorf("%w: upload ended in state %v", ErrServiceFailed, state)
	}
	return nil
}

// Close deletes the remote upload, if any. Safe to call on all paths.
func (ps *PreparedSource) Close(ctx context.Context) {
	if ps == nil || ps.remote == nil || ps.client == nil {
		return
	}
	if err := ps.client.DeleteFile(ctx, ps.remote.Name); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to delete remote file %s: %v\n", ps.remote.Name, err)
	}
	ps.remote = nil
}

// Process runs one generation task over a prepared source and returns the
// generated text verbatim
func (p *Processor) Process(ctx context.Context, prepared *PreparedSource, mode Mode, style string, metadata *VideoMetadata) (string, error) {
	if err := p.ensureClient(ctx); err != nil {
		return "", err
	}

	instruction, err := p.prompts.Instruction(mode, style, metadata)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	parts := []genai.Part{genai.Text(instruction)}
	switch prepared.source.Kind {
	case SourceText:
		parts = append(parts, genai.Text("Nội dung gốc:\n"+prepared.source.Text))
	case SourceAudio:
		if prepared.remote == nil {
			return "", fmt.Errorf("audio source was not prepared")
		}
		parts = append(parts, genai.FileData{MIMEType: prepared.remote.MIMEType, URI: prepared.remote.URI})
	default:
		return "", fmt.Errorf("unsupported content source: %s", prepared.source.Kind)
	}

	if p.verbose {
		fmt.Printf("Generating %s from %s source\n", mode, prepared.source.Kind)
	}

	genCtx, cancel := context.WithTimeout(ctx, p.genTimeout)
	defer cancel()

	text, err := p.client.Generate(genCtx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: generating %s: %v", ErrServiceFailed, mode, err)
	}

	return text, nil
}
