package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddFallbackFlags adds flags related to the audio fallback
func AddFallbackFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fallback-audio", false, "Process the audio track with Gemini if no captions available (uses API quota)")
}

// AddGeminiFlags adds flags related to the Gemini API functionality
func AddGeminiFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model to use")
}

// AddPromptFlag adds the custom prompt template flag
func AddPromptFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt template (string or file path)")
}

// AddStyleFlag adds the script style flag
func AddStyleFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("style", "s", "", "Script voice, free text or one of the presets (see config.toml)")
}

// HandlePromptFlag processes the --prompt flag to override the template of a mode
func HandlePromptFlag(cmd *cobra.Command, app *App, mode Mode) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}
	if prompt == "" {
		return nil
	}

	if err := app.Prompts().SetOverride(mode, prompt); err != nil {
		return err
	}

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.ui.Verbose("Using custom prompt file: %s\n", prompt)
	} else {
		app.ui.Verbose("Using custom prompt string\n")
	}

	return nil
}

// HandleStyleFlag resolves the script style from flag or config
func HandleStyleFlag(cmd *cobra.Command, config *Config) string {
	style, _ := cmd.Flags().GetString("style")
	if style != "" {
		return style
	}
	return config.Style
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// ValidateGeminiRequirements validates the Gemini API key and model from
// command flags and config
func ValidateGeminiRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateGeminiAPIKey(config.GeminiAPIKey); err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" {
		config.GeminiModel = modelFlag
	}
	if config.GeminiModel == "" {
		return fmt.Errorf("no Gemini model configured")
	}

	return nil
}
