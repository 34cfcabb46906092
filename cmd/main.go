package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/takak2166/scrapbox2md/internal/config"
	"github.com/takak2166/scrapbox2md/internal/logger"
	"github.com/takak2166/scrapbox2md/internal/notion"
	"github.com/takak2166/scrapbox2md/internal/parser"
	"github.com/takak2166/scrapbox2md/internal/writer"
)

type options struct {
	input    string
	output   string
	logLevel string
	notion   bool
	dryRun   bool
	quiet    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scrapbox2md",
		Short: "Convert a Scrapbox JSON export into Markdown files",
		Long: `scrapbox2md reads a Scrapbox project export and writes one Markdown file per
page, with the page title, id and timestamps in YAML front matter.

Settings may also come from the environment or a .env file:
  LOG_LEVEL, OUTPUT_DIR, NOTION_API_KEY, NOTION_PARENT_PAGE_ID

Examples:
  scrapbox2md --input project.json
  scrapbox2md -i project.json -o notes --log-level debug
  scrapbox2md -i project.json --notion`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to Scrapbox JSON export file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory to save markdown files (default: $OUTPUT_DIR or ./output)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (default: $LOG_LEVEL or info)")
	cmd.Flags().BoolVar(&opts.notion, "notion", false, "Also upload every page to Notion")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and tokenize only, write nothing")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.OutputDir = opts.output
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(opts.notion); err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	if opts.quiet {
		logger.SetOutput(io.Discard)
	}

	result, err := parser.New().ParseFile(opts.input)
	if err != nil {
		if errors.Is(err, parser.ErrMissingPages) {
			logger.Error("Export has no pages list, nothing was written", err)
		} else {
			logger.Error("Failed to parse input file", err)
		}
		return err
	}

	if opts.dryRun {
		logger.Info("Dry run completed", map[string]interface{}{
			"total_pages":   len(result.Pages),
			"skipped_pages": len(result.Skipped),
		})
		return nil
	}

	w, err := writer.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	var notionClient *notion.Client
	if opts.notion {
		notionClient, err = notion.New(cfg.NotionAPIKey, cfg.NotionParentPageID)
		if err != nil {
			return fmt.Errorf("initializing Notion client: %w", err)
		}
	}

	successCount := 0
	for _, page := range result.Pages {
		path, err := w.WritePage(page)
		if err != nil {
			logger.Error("Failed to save markdown file", err, map[string]interface{}{
				"id":    page.Page.ID,
				"title": page.Page.Title,
			})
			continue
		}
		logger.Debug("Wrote markdown file", map[string]interface{}{
			"id":       page.Page.ID,
			"filepath": path,
		})

		if notionClient != nil {
			if err := notionClient.CreatePage(ctx, page); err != nil {
				logger.Error("Failed to create Notion page", err, map[string]interface{}{
					"id":    page.Page.ID,
					"title": page.Page.Title,
				})
				continue
			}
		}

		successCount++
	}

	skipped := make([]string, 0, len(result.Skipped))
	for _, skip := range result.Skipped {
		skipped = append(skipped, fmt.Sprintf("#%d %q", skip.Index, skip.Title))
	}

	logger.Info("Conversion completed", map[string]interface{}{
		"total_pages":     len(result.Pages),
		"success_count":   successCount,
		"failure_count":   len(result.Pages) - successCount,
		"skipped_count":   len(result.Skipped),
		"skipped_pages":   skipped,
		"markdown_output": cfg.OutputDir,
	})

	return nil
}
