package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ndhai/remixtube/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "remixtube [YouTube URL or ID]",
	Short: "Summarize a YouTube video and rewrite it as a short-form script",
	Long: `remixtube turns a YouTube video into new content using Google Gemini.

It fetches the video's captions when available (Vietnamese first, then
English), or processes the audio track with Gemini when no captions exist.
From that content it produces a bullet-point summary and a short-form video
script in a stylistic voice of your choice.`,
	Example: `  # Summarize and rewrite a YouTube video (default behavior)
  remixtube "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  remixtube dQw4w9WgXcQ

  # Pick a script voice
  remixtube dQw4w9WgXcQ --style "Kịch tính & Giật gân"

  # Use a specific Gemini model
  remixtube dQw4w9WgXcQ --model gemini-2.5-pro

  # Process the audio without asking if no captions exist (uses API quota)
  remixtube dQw4w9WgXcQ --fallback-audio`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		style := internal.HandleStyleFlag(cmd, config)
		fallbackAudio, _ := cmd.Flags().GetBool("fallback-audio")
		return app.Remix(cmd.Context(), args[0], style, fallbackAudio)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config and prompt templates exist in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}
	if err := internal.EnsureDefaultPrompts(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompts: %v\n", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cancel()
		os.Exit(0)
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddFallbackFlags(rootCmd)
	internal.AddGeminiFlags(rootCmd)
	internal.AddStyleFlag(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
}
