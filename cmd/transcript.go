package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndhai/remixtube/internal"
)

// fetchTranscript retrieves a transcript for the given argument and
// optionally falls back to Gemini audio transcription.
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (string, error) {
	_, videoID, err := internal.ParseArg(arg)
	if err != nil {
		return "", err
	}

	transcript, err := app.GetTranscript(cmd.Context(), videoID)
	if err == nil {
		return transcript, nil
	}

	fallbackAudio, _ := cmd.Flags().GetBool("fallback-audio")
	if !fallbackAudio {
		return "", err
	}

	audioFile, audioErr := app.DownloadAudio(cmd.Context(), videoID)
	if audioErr != nil {
		return "", audioErr
	}
	defer os.Remove(audioFile)

	transcript, transcribeErr := app.TranscribeAudio(cmd.Context(), audioFile)
	if transcribeErr != nil {
		return "", transcribeErr
	}

	if saveErr := internal.SaveTranscript(videoID, transcript, config.TranscriptsDir); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", saveErr)
	}

	return transcript, nil
}

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL or ID]",
	Short: "Get transcript from YouTube (cached or fetched)",
	Example: `  # Get transcript from YouTube captions
  remixtube transcript "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  remixtube transcript dQw4w9WgXcQ

  # Save transcript to file
  remixtube transcript dQw4w9WgXcQ -o transcript.txt

  # Transcribe the audio with Gemini if no captions (uses API quota)
  remixtube transcript dQw4w9WgXcQ --fallback-audio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		transcript, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddFallbackFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
