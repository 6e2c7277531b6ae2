package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var opts RunOptions

	root := &cobra.Command{
		Use:   "go_transcript",
		Short: "Fetch YouTube transcripts as timestamped and prose text files",
		Example: `  # Interactive
  go_transcript

  # Non-interactive, two languages into ./out
  go_transcript --url "https://youtu.be/dQw4w9WgXcQ" --languages en,de -o out`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.LanguagesSet = cmd.Flags().Changed("languages")
			return app.Run(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.URL, "url", "", "YouTube video URL (skips the URL prompt)")
	root.Flags().StringVarP(&opts.Languages, "languages", "l", "", "Comma-separated language codes (skips the language prompt; empty = auto)")
	root.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", app.OutputDir, "Directory for the transcript files")

	if app.Version != "" {
		root.Version = app.Version
	}

	root.AddCommand(newLanguagesCommand(app), newHistoryCommand(app), newServeCommand(app))
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.out())
	root.SetErr(app.out())

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		app.println("\n\nOperation cancelled by user.")
		return 1
	default:
		fmt.Fprintf(app.out(), "\nUnexpected error: %v\n", err)
		return 1
	}
}
