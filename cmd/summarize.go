package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ndhai/remixtube/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID] [--fallback-audio]",
	Short: "Generate a bullet-point summary of a YouTube video",
	Example: `  # Generate summary from YouTube video
  remixtube summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  remixtube summarize dQw4w9WgXcQ

  # Use specific Gemini model
  remixtube summarize dQw4w9WgXcQ --model gemini-2.5-pro

  # Use custom prompt template
  remixtube summarize dQw4w9WgXcQ --prompt "tldr cho video {{.Title}}"

  # Process audio if no captions (uses API quota)
  remixtube summarize dQw4w9WgXcQ --fallback-audio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app, internal.ModeSummary); err != nil {
			return err
		}

		fallbackAudio, _ := cmd.Flags().GetBool("fallback-audio")
		summary, err := app.Summarize(cmd.Context(), args[0], fallbackAudio)
		if err != nil {
			return err
		}

		return printRendered(summary)
	},
}

func init() {
	internal.AddFallbackFlags(summarizeCmd)
	internal.AddGeminiFlags(summarizeCmd)
	internal.AddPromptFlag(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
