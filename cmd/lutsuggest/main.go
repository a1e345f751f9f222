package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bagtoad/lutsuggest/internal/analysis"
	"github.com/bagtoad/lutsuggest/internal/catalog"
	"github.com/bagtoad/lutsuggest/internal/decode"
	"github.com/bagtoad/lutsuggest/internal/export"
	"github.com/bagtoad/lutsuggest/internal/legacy"
	"github.com/bagtoad/lutsuggest/internal/logging"
	"github.com/bagtoad/lutsuggest/internal/recipe"
	"github.com/bagtoad/lutsuggest/internal/report"
	"github.com/bagtoad/lutsuggest/internal/scanner"
	"github.com/spf13/cobra"
)

type options struct {
	catalogPath  string
	format       string
	mode         string
	out          string
	workers      int
	maxDimension int
	limit        int
	verbose      bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "lutsuggest <image-or-directory>...",
		Short: "Recommend LUT blend recipes that reproduce the look of a few photos",
		Long: `lutsuggest measures the colour balance, contrast, brightness and
saturation of up to five photos and recommends combinations of colour-grading
LUTs, with blend strengths, that reproduce their look.

Five recipes are built, one per stylistic direction, from a built-in LUT
catalog, a custom catalog file (~/.lutsuggest/catalog.yaml), or a catalog
given with --catalog. The classic threshold-based recommendation is printed
alongside them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a YAML LUT catalog")
	rootCmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or csv")
	rootCmd.Flags().StringVar(&opts.mode, "mode", "both", "Recommenders to run: recipes, legacy or both")
	rootCmd.Flags().StringVar(&opts.out, "out", "", "Write the report to this file instead of stdout")
	rootCmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of images to analyze in parallel")
	rootCmd.Flags().IntVar(&opts.maxDimension, "max-dimension", 0, "Downscale images so neither side exceeds this many pixels (0 = full size)")
	rootCmd.Flags().IntVar(&opts.limit, "limit", scanner.DefaultLimit, "Maximum number of images per batch")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	var catalogFlag string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the LUT catalog in use as YAML",
		Long: `Print the catalog lutsuggest would use, as YAML. Save the output to
~/.lutsuggest/catalog.yaml and edit it to customise the candidate LUTs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd.OutOrStdout(), catalogFlag)
		},
	}
	catalogCmd.Flags().StringVar(&catalogFlag, "catalog", "", "Path to a YAML LUT catalog")
	rootCmd.AddCommand(catalogCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, opts options) error {
	if err := validate(opts); err != nil {
		return err
	}

	// Keep stdout clean for machine-readable output.
	status := io.Writer(os.Stdout)
	if opts.format != "text" || opts.out != "" {
		status = os.Stderr
	}
	log := logging.New(os.Stderr, opts.verbose)

	cat, err := catalog.Resolve(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("cannot resolve catalog: %w", err)
	}
	log.WithField("luts", cat.Len()).Debug("catalog loaded")

	scanResult, err := scanner.Collect(args, opts.limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(status, "Found %d images (%d non-image files skipped)\n", len(scanResult.ImagePaths), scanResult.SkippedCount)
	if scanResult.Truncated > 0 {
		log.WithField("limit", opts.limit).Warnf("ignoring %d images beyond the batch limit", scanResult.Truncated)
	}

	sources := make([]decode.Source, len(scanResult.ImagePaths))
	for i, p := range scanResult.ImagePaths {
		sources[i] = decode.NewSource(p)
	}

	analyzer := &analysis.Analyzer{
		Decoder: decode.FileDecoder{MaxDimension: opts.maxDimension},
		Workers: opts.workers,
		Log:     log,
		Progress: func(current, total int) {
			fmt.Fprintf(status, "\rAnalyzing image %d/%d...", current, total)
		},
	}
	agg, err := analyzer.Analyze(ctx, sources)
	fmt.Fprintln(status) // newline after progress
	if errors.Is(err, analysis.ErrNoUsableImages) {
		return fmt.Errorf("none of the %d images could be analyzed: %w", len(sources), err)
	}
	if err != nil {
		return err
	}

	res := report.Result{Aggregate: agg, Skipped: scanResult.SkippedCount}
	if opts.mode != "legacy" {
		set, err := recipe.Assemble(agg, cat)
		if err != nil {
			return fmt.Errorf("cannot build recipes: %w", err)
		}
		res.Recipes = &set
	}
	if opts.mode != "recipes" {
		rec := legacy.Recommend(agg)
		res.Legacy = &rec
	}

	render := func(w io.Writer) error {
		switch opts.format {
		case "json":
			return report.WriteJSON(w, res)
		case "csv":
			return report.WriteCSV(w, *res.Recipes)
		default:
			report.Print(w, res)
			return nil
		}
	}

	if opts.out == "" {
		return render(os.Stdout)
	}
	dest, err := export.WriteFile(opts.out, render)
	if err != nil {
		return err
	}
	fmt.Fprintf(status, "Report written to %s\n", dest)
	return nil
}

func validate(opts options) error {
	switch opts.format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", opts.format)
	}
	switch opts.mode {
	case "recipes", "legacy", "both":
	default:
		return fmt.Errorf("unknown mode %q (want recipes, legacy or both)", opts.mode)
	}
	if opts.format == "csv" && opts.mode == "legacy" {
		return fmt.Errorf("csv output lists recipe blends and needs --mode recipes or both")
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1")
	}
	if opts.maxDimension < 0 {
		return fmt.Errorf("--max-dimension must not be negative")
	}
	return nil
}

func printCatalog(w io.Writer, path string) error {
	cat, err := catalog.Resolve(path)
	if err != nil {
		return fmt.Errorf("cannot resolve catalog: %w", err)
	}
	data, err := catalog.Marshal(cat)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
