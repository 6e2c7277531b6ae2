package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/history"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
)

var errInvalidURL = errors.New("invalid YouTube URL")

func newLanguagesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "languages URL",
		Short: "List the caption languages available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := transcript.ExtractVideoID(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errInvalidURL, args[0])
			}
			langs, err := app.YouTube.ListLanguages(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("list languages: %w", err)
			}
			if len(langs) == 0 {
				app.println("No transcripts available for this video.")
				return nil
			}
			for _, l := range langs {
				if l.Generated {
					app.printf("  %s: %s (auto-generated)\n", l.Code, l.Name)
					continue
				}
				app.printf("  %s: %s\n", l.Code, l.Name)
			}
			return nil
		},
	}
}

func newHistoryCommand(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously written transcript files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exports, err := app.store().List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(exports) == 0 {
				return nil
			}
			tw := tabwriter.NewWriter(app.out(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tVIDEO\tLANG\tKIND\tSEGMENTS\tPATH\tTITLE")
			for _, e := range exports {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					e.CreatedAt.Local().Format(time.DateTime), e.VideoID, e.Language, e.Kind,
					e.Segments, e.Path, engine.TruncateRunes(e.Title, 40, "..."))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Maximum number of entries")
	return cmd
}

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transcript tools as an MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version := app.Version
			if version == "" {
				version = "dev"
			}
			server := mcp.NewServer(&mcp.Implementation{
				Name:    "go_transcript",
				Version: version,
			}, nil)
			transcriptserver.RegisterTools(server, app.YouTube)
			slog.Info("starting go_transcript MCP server", slog.String("port", app.MCPPort))

			return mcpserver.Run(server, mcpserver.Config{
				Name:         "go_transcript",
				Version:      version,
				Port:         app.MCPPort,
				WriteTimeout: 300 * time.Second,
				Metrics:      engine.FormatMetrics,
			})
		},
	}
}
