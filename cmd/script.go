package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndhai/remixtube/internal"
)

// printRendered renders markdown to the terminal with a plain-text fallback
func printRendered(content string) error {
	rendered, err := internal.RenderMarkdown(content)
	if err != nil {
		fmt.Println(content)
		return nil
	}
	fmt.Println(rendered)
	return nil
}

// scriptCmd represents the script command
var scriptCmd = &cobra.Command{
	Use:   "script [YouTube URL or ID] [--style voice]",
	Short: "Rewrite a YouTube video as a short-form script",
	Long: `Rewrite a YouTube video as a short-form video script with four fixed
sections: TIÊU ĐỀ, HOOK, NỘI DUNG CHÍNH and CTA.

The style is free text; it is passed verbatim into the writing instruction.`,
	Example: `  # Rewrite with the default voice
  remixtube script "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Pick one of the preset voices
  remixtube script dQw4w9WgXcQ --style "Sâu sắc & Triết lý"

  # Any free-text voice works
  remixtube script dQw4w9WgXcQ --style "giọng kể chuyện ma"

  # Process audio if no captions (uses API quota)
  remixtube script dQw4w9WgXcQ --fallback-audio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app, internal.ModeRewrite); err != nil {
			return err
		}

		style := internal.HandleStyleFlag(cmd, config)
		fallbackAudio, _ := cmd.Flags().GetBool("fallback-audio")
		script, err := app.WriteScript(cmd.Context(), args[0], style, fallbackAudio)
		if err != nil {
			return err
		}

		return printRendered(script)
	},
}

func init() {
	internal.AddFallbackFlags(scriptCmd)
	internal.AddGeminiFlags(scriptCmd)
	internal.AddPromptFlag(scriptCmd)
	internal.AddStyleFlag(scriptCmd)
	rootCmd.AddCommand(scriptCmd)
}
