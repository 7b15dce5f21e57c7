package internal

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "watch URL with extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "short URL",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "shorts URL",
			input: "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "embed URL",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "bare video ID",
			input: "dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "surrounding whitespace",
			input: "  https://youtu.be/dQw4w9WgXcQ \n",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:    "not a url",
			input:   "not a url",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "token too short",
			input:   "https://www.youtube.com/watch?v=short",
			wantErr: true,
		},
		{
			name:    "unrelated site",
			input:   "https://example.com/page",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractVideoID(%q) = %q, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ExtractVideoID(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDIdempotent(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	first, err := ExtractVideoID(url)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := ExtractVideoID(url)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Errorf("ExtractVideoID not idempotent: %q vs %q", first, second)
	}
}

func TestIsValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c-d_e-f", true},
		{"tooshort", false},
		{"abcdefghijkl", false},
		{"dQw4w9WgXc!", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidVideoID(tt.id); got != tt.want {
			t.Errorf("IsValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseArg(t *testing.T) {
	url, id, err := ParseArg("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ParseArg: %v", err)
	}
	if id != "dQw4w9WgXcQ" {
		t.Errorf("id = %q, want dQw4w9WgXcQ", id)
	}
	if url != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("url = %q", url)
	}

	if _, _, err := ParseArg("definitely not a video"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseArg on junk: error = %v, want ErrInvalidInput", err)
	}
}
