package internal

// SourceKind says what kind of content feeds a generation request.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceText
	SourceAudio
)

// String returns a human-readable representation of the source kind.
func (sk SourceKind) String() string {
	switch sk {
	case SourceText:
		return "text"
	case SourceAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// ContentSource is the content handed to the processor: either transcript
// text or a path to a local audio file. Exactly one variant is set per run.
type ContentSource struct {
	Kind SourceKind
	Text string
	Path string
}

// TextSource wraps transcript text as a content source.
func TextSource(text string) ContentSource {
	return ContentSource{Kind: SourceText, Text: text}
}

// AudioSource wraps a local audio file path as a content source.
func AudioSource(path string) ContentSource {
	return ContentSource{Kind: SourceAudio, Path: path}
}

// Mode selects the generation task.
type Mode int

const (
	ModeSummary Mode = iota
	ModeRewrite
	ModeTranscribe
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSummary:
		return "summary"
	case ModeRewrite:
		return "rewrite"
	case ModeTranscribe:
		return "transcribe"
	default:
		return "unknown"
	}
}

// Styles are the canonical script voices offered by the CLI. Any free-text
// style is accepted; these are the presets the picker shows.
var Styles = []string{
	"Hài hước & Vui nhộn",
	"Nghiêm túc & Chuyên gia",
	"Sâu sắc & Triết lý",
	"Kịch tính & Giật gân",
	"Tiên hiệp & Cổ trang",
}
