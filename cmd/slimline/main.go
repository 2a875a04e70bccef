// Command slimline simplifies baseline and mask annotations in ALTO and
// PAGE-XML files.
//
// Usage:
//
//	slimline [flags] file.xml [file.xml ...]
//
// By default each input produces a sibling output with the configured
// suffix (page.xml -> page.simple.xml). With -sweep every configured
// ratio is tried in turn, each trial starting from a fresh parse, so the
// resulting outputs can be compared side by side.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/minio/highwayhash"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/tsawler/slimline"
	"github.com/tsawler/slimline/dialect"
	"github.com/tsawler/slimline/internal/config"
	"github.com/tsawler/slimline/model"
	"github.com/tsawler/slimline/render"
	"github.com/tsawler/slimline/report"
	"github.com/tsawler/slimline/simplify"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

type runOptions struct {
	cfg        config.Config
	dialect    dialect.Dialect // Unknown means detect per file
	outDir     string
	imagesDir  string
	sweep      bool
	preview    bool
	reportPath string
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		dialectName string
		lineRatio   float64
		maskRatio   float64
		epsilon     float64
		tolerance   float64
		algorithm   string
		suffix      string
		outDir      string
		sweep       bool
		sweepValues string
		imagesDir   string
		preview     bool
		reportPath  string
		configPath  string
		verbose     bool
	)

	flag.StringVar(&dialectName, "dialect", "auto", "Annotation dialect: auto, alto or page")
	flag.Float64Var(&lineRatio, "line-ratio", 0, "Baseline tolerance as a fraction of line height")
	flag.Float64Var(&maskRatio, "mask-ratio", 0, "Mask tolerance as a fraction of mask height")
	flag.Float64Var(&epsilon, "epsilon", 0, "Absolute baseline tolerance, overrides -line-ratio")
	flag.Float64Var(&tolerance, "tolerance", 0, "Absolute mask tolerance, overrides -mask-ratio")
	flag.StringVar(&algorithm, "algorithm", "", "Line decimation algorithm: douglas-peucker or visvalingam-whyatt")
	flag.StringVar(&suffix, "suffix", "", "Suffix for derived outputs (page.xml -> page.<suffix>.xml)")
	flag.StringVar(&outDir, "outdir", "", "Directory for outputs; defaults next to each input")
	flag.BoolVar(&sweep, "sweep", false, "Try every configured ratio per file, one output each")
	flag.StringVar(&sweepValues, "values", "", "Comma-separated ratios for -sweep, e.g. 0.05,0.1,0.2")
	flag.StringVar(&imagesDir, "images", "", "Directory holding the page images referenced by the inputs")
	flag.BoolVar(&preview, "preview", false, "Render a PNG overlay of the simplified geometry per output")
	flag.StringVar(&reportPath, "report", "", "Write a PDF summary of the batch to this path")
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal().Err(err).Msg("loading configuration")
		}
	}

	// Flags the user set override the file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["line-ratio"] {
		cfg.LineRatio = lineRatio
	}
	if set["mask-ratio"] {
		cfg.MaskRatio = maskRatio
	}
	if set["epsilon"] {
		cfg.Epsilon = epsilon
	}
	if set["tolerance"] {
		cfg.Tolerance = tolerance
	}
	if set["algorithm"] {
		cfg.Algorithm = algorithm
	}
	if set["suffix"] {
		cfg.Suffix = suffix
	}
	if sweepValues != "" {
		values, err := parseValues(sweepValues)
		if err != nil {
			log.Fatal().Err(err).Msg("parsing -values")
		}
		cfg.Sweep = values
	}
	if _, err := simplify.ParseAlgorithm(cfg.Algorithm); err != nil {
		log.Fatal().Err(err).Msg("invalid algorithm")
	}

	dl := dialect.Unknown
	if dialectName != "auto" {
		var err error
		if dl, err = dialect.Parse(dialectName); err != nil {
			log.Fatal().Err(err).Msg("invalid dialect")
		}
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: slimline [flags] file.xml [file.xml ...]")
		flag.Usage()
		os.Exit(2)
	}

	opts := runOptions{
		cfg:        cfg,
		dialect:    dl,
		outDir:     outDir,
		imagesDir:  imagesDir,
		sweep:      sweep,
		preview:    preview,
		reportPath: reportPath,
	}
	os.Exit(run(context.Background(), inputs, opts))
}

func run(ctx context.Context, inputs []string, opts runOptions) int {
	fs := afs.New()
	var entries []report.Entry
	failed := 0
	for _, path := range inputs {
		fileEntries, err := processFile(ctx, fs, path, opts)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("skipping file")
			failed++
			continue
		}
		entries = append(entries, fileEntries...)
	}

	if len(entries) > 0 {
		meanLine, meanMask := meanReductions(entries)
		log.Info().
			Int("outputs", len(entries)).
			Str("mean_line_reduction", fmt.Sprintf("%.1f%%", meanLine*100)).
			Str("mean_mask_reduction", fmt.Sprintf("%.1f%%", meanMask*100)).
			Msg("batch complete")
	}

	if opts.reportPath != "" {
		if err := report.Write(entries, opts.reportPath); err != nil {
			log.Error().Err(err).Msg("writing report")
			return 1
		}
		log.Info().Str("path", opts.reportPath).Msg("report written")
	}

	if failed > 0 {
		log.Warn().Int("failed", failed).Msg("some files were skipped")
		return 1
	}
	return 0
}

// processFile simplifies one input, producing one output in normal mode
// and one per sweep ratio in sweep mode.
func processFile(ctx context.Context, fs afs.Service, path string, opts runOptions) ([]report.Entry, error) {
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dl := opts.dialect
	if dl == dialect.Unknown {
		dl = dialect.Detect(data)
	}
	doc, err := slimline.ParseDialect(data, dl)
	if err != nil {
		return nil, err
	}
	inputHash, err := fingerprint(data)
	if err != nil {
		return nil, err
	}

	if !opts.sweep {
		entry, err := runTrial(ctx, fs, doc, path, trialParams{
			lineOpts: lineOptions(opts.cfg, opts.cfg.LineRatio),
			maskOpts: maskOptions(opts.cfg, opts.cfg.MaskRatio),
			suffix:   opts.cfg.Suffix,
		}, inputHash, opts)
		if err != nil {
			return nil, err
		}
		return []report.Entry{entry}, nil
	}

	var entries []report.Entry
	for i, ratio := range opts.cfg.Sweep {
		if i > 0 {
			if err := doc.Reload(); err != nil {
				return entries, err
			}
		}
		entry, err := runTrial(ctx, fs, doc, path, trialParams{
			lineOpts: lineOptions(opts.cfg, ratio),
			maskOpts: maskOptions(opts.cfg, ratio),
			suffix:   fmt.Sprintf("%s-%02.0f", opts.cfg.Suffix, ratio*100),
		}, inputHash, opts)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type trialParams struct {
	lineOpts slimline.SimplifyOptions
	maskOpts slimline.SimplifyOptions
	suffix   string
}

// runTrial simplifies the parsed document in place and writes the
// suffixed output, plus an overlay preview when requested.
func runTrial(ctx context.Context, fs afs.Service, doc *slimline.Document, path string, params trialParams, inputHash uint64, opts runOptions) (report.Entry, error) {
	entry := report.Entry{File: filepath.Base(outputName(path, params.suffix, opts.outDir))}

	lines, err := doc.SimplifyLines(params.lineOpts)
	if err != nil {
		return entry, err
	}
	entry.LineCount = lines.Len()
	entry.LinePercent = lines.MeanPercent()

	masks, err := doc.SimplifyMasks(params.maskOpts)
	switch {
	case errors.Is(err, model.ErrUnsupported):
		log.Debug().Str("file", path).Msg("dialect has no masks, lines only")
	case err != nil:
		return entry, err
	default:
		entry.MaskCount = masks.Len()
		entry.MaskPercent = masks.MeanPercent()
	}

	text, err := doc.Dump("")
	if err != nil {
		return entry, err
	}
	outputHash, err := fingerprint([]byte(text))
	if err != nil {
		return entry, err
	}
	if outputHash == inputHash {
		entry.Unchanged = true
		log.Info().Str("file", path).Msg("already simplified, output skipped")
		return entry, nil
	}

	dest := outputName(path, params.suffix, opts.outDir)
	if err := fs.Upload(ctx, dest, file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return entry, fmt.Errorf("writing %s: %w", dest, err)
	}
	log.Info().
		Str("output", dest).
		Str("line_reduction", fmt.Sprintf("%.1f%%", entry.LinePercent*100)).
		Str("mask_reduction", fmt.Sprintf("%.1f%%", entry.MaskPercent*100)).
		Msg("simplified")

	if opts.preview {
		if err := writePreview(doc, path, dest, opts.imagesDir); err != nil {
			// A missing page image should not fail the batch.
			log.Warn().Err(err).Str("file", path).Msg("preview skipped")
		}
	}
	return entry, nil
}

// writePreview renders the simplified geometry over the page image the
// document references.
func writePreview(doc *slimline.Document, path, dest, imagesDir string) error {
	basedir := imagesDir
	if basedir == "" {
		basedir = filepath.Dir(path)
	}
	imgPath, err := doc.ImagePath(basedir)
	if err != nil {
		return err
	}
	baselines, masks, err := doc.Geometry()
	if err != nil {
		return err
	}
	out := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".png"
	if err := render.File(imgPath, out, baselines, masks, render.DefaultOptions()); err != nil {
		return err
	}
	log.Debug().Str("preview", out).Msg("preview written")
	return nil
}

func lineOptions(cfg config.Config, ratio float64) slimline.SimplifyOptions {
	algo, _ := simplify.ParseAlgorithm(cfg.Algorithm)
	return slimline.SimplifyOptions{Ratio: ratio, Epsilon: cfg.Epsilon, Algorithm: algo}
}

func maskOptions(cfg config.Config, ratio float64) slimline.SimplifyOptions {
	return slimline.SimplifyOptions{Ratio: ratio, Epsilon: cfg.Tolerance}
}

// meanReductions averages the per-output reduction fractions. Lines are
// averaged over every output; masks only over outputs that had masks, so
// lines-only dialects do not drag the mask mean toward zero.
func meanReductions(entries []report.Entry) (meanLine, meanMask float64) {
	var lineSum, maskSum float64
	maskN := 0
	for _, e := range entries {
		lineSum += e.LinePercent
		if e.MaskCount > 0 {
			maskSum += e.MaskPercent
			maskN++
		}
	}
	if len(entries) > 0 {
		meanLine = lineSum / float64(len(entries))
	}
	if maskN > 0 {
		meanMask = maskSum / float64(maskN)
	}
	return meanLine, meanMask
}

// parseValues parses a comma-separated ratio list such as "0.05,0.1,0.2".
func parseValues(s string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}

// outputName derives the suffixed output path: page.xml -> page.simple.xml.
func outputName(path, suffix, outDir string) string {
	dir := filepath.Dir(path)
	if outDir != "" {
		dir = outDir
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"."+suffix+ext)
}

// fingerprint hashes serialized content so re-runs can recognize outputs
// that would be byte-identical to their input.
func fingerprint(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
