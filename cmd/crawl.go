package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/titlecrawl/core"
	"github.com/gaurav-prasanna/titlecrawl/core/config"
	"github.com/gaurav-prasanna/titlecrawl/core/fetch"
	"github.com/gaurav-prasanna/titlecrawl/core/logger"
	"github.com/gaurav-prasanna/titlecrawl/core/output"
	"github.com/gaurav-prasanna/titlecrawl/core/render"
	"github.com/gaurav-prasanna/titlecrawl/core/store"
	"github.com/gaurav-prasanna/titlecrawl/crawl"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps crawl flags to their config keys.
var flagKeys = map[string]string{
	"max-pages":   "max_pages",
	"delay":       "delay",
	"timeout":     "timeout",
	"user-agent":  "user_agent",
	"output-dir":  "output_dir",
	"output":      "output",
	"format":      "format",
	"db":          "db",
	"skip-static": "skip_static",
	"verbose":     "verbose",
	"quiet":       "quiet",
	"log-json":    "log_json",
}

func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Crawl a site and save the URL → title mapping",
		Long: `Crawl starts at the seed URL (default https://www.musashino-u.ac.jp), follows
links on the same host breadth-first until the page budget is spent, and writes
the URL → title mapping sorted by URL.

Examples:
  titlecrawl crawl
  titlecrawl crawl https://example.com --max-pages 10 --delay 1s
  titlecrawl crawl https://example.com --format markdown --output-dir ./out
  titlecrawl crawl https://example.com --db ./history.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawl,
	}

	d := config.NewConfig()
	f := cmd.Flags()
	f.Int("max-pages", d.MaxPages, "maximum number of pages to visit")
	f.Duration("delay", d.Delay, "pause between requests")
	f.Duration("timeout", d.Timeout, "per-request timeout")
	f.String("user-agent", d.UserAgent, "User-Agent header")
	f.String("output-dir", d.OutputDir, "output directory")
	f.StringP("output", "o", d.OutputFile, "output file name (extension follows --format)")
	f.StringP("format", "f", d.Format, "output format: json, markdown or pdf")
	f.String("db", d.DBPath, "append the run to this SQLite database")
	f.Bool("skip-static", d.SkipStaticAssets, "do not follow links to images, archives and other static files")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		JSON:    cfg.LogJSON,
		Output:  cmd.ErrOrStderr(),
	})
	log := logger.L()

	renderer, err := selectRenderer(cfg.Format)
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
		Headers:     cfg.Headers,
		MaxBodySize: cfg.MaxBodySize,
	})
	engine := crawl.New(fetcher,
		crawl.WithMaxPages(cfg.MaxPages),
		crawl.WithLimiter(crawl.NewLimiter(cfg.Delay, crawl.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		})),
		crawl.WithSkipStaticAssets(cfg.SkipStaticAssets),
		crawl.WithLogger(log),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Crawling from %s\n", cfg.Seed)

	report, err := engine.Crawl(ctx, cfg.Seed)
	if err != nil {
		if report != nil {
			return fmt.Errorf("crawl interrupted after %d pages: %w", len(report.Pages), err)
		}
		return err
	}

	if err := printTitles(out, report); err != nil {
		return err
	}

	data, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	path, err := writer.Write(output.FileName(cfg.OutputFile, renderer.Extension()), data)
	if err != nil {
		return err
	}

	if cfg.DBPath != "" {
		if err := saveRun(ctx, log, cfg.DBPath, report); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n✓ Written: %s\n", path)
	return nil
}

// loadConfig layers defaults, config file, TITLECRAWL_* env and changed
// flags, in increasing priority. A positional argument sets the seed.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfgFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	path, err := config.FindConfigFile(cfgFlag)
	if err != nil {
		return nil, err
	}

	v, err := config.NewViper(path)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		v.Set("seed", args[0])
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// printTitles dumps the sorted mapping to the console in the same JSON
// form as the saved file.
func printTitles(w io.Writer, report *core.Report) error {
	data, err := render.NewJSONRenderer().Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Fprintln(w, "\n=== titles ===")
	_, err = w.Write(data)
	return err
}

func saveRun(ctx context.Context, log *slog.Logger, dbPath string, report *core.Report) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.SaveReport(ctx, report)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	log.Info("run saved", "db", dbPath, "run_id", runID, "pages", len(report.Pages))
	return nil
}

// selectRenderer creates the Renderer for a configured format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case config.FormatJSON:
		return render.NewJSONRenderer(), nil
	case config.FormatMarkdown:
		return render.NewMarkdownRenderer(), nil
	case config.FormatPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}
