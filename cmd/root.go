// =============================================================================
// samcut - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// samcut itself: it reads SAM records and prints the requested fields.
//
// COBRA CLI STRUCTURE:
//   rootCmd (samcut [flags] [fields...])
//   └── versionCmd (samcut version)
//
// CONFIGURATION:
//   Settings come from three layers, later layers winning:
//   1. Built-in defaults
//   2. The YAML file named by --config (or ./samcut.yaml when present)
//   3. Flags set explicitly on the command line
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/samcut/internal/config"
	"github.com/ginjaninja78/samcut/internal/input"
	"github.com/ginjaninja78/samcut/internal/logging"
	"github.com/ginjaninja78/samcut/internal/output"
	"github.com/ginjaninja78/samcut/internal/pipeline"
	"github.com/ginjaninja78/samcut/pkg/utils"
)

// defaultConfigFile is loaded when --config is not given and the file exists
// in the working directory.
const defaultConfigFile = "samcut.yaml"

// =============================================================================
// COMMAND OPTIONS
// =============================================================================

// rootOptions holds the values bound to the root command's flags.
type rootOptions struct {
	cfgFile   string
	verbose   bool
	header    bool
	delim     string
	fill      string
	file      string
	bam       bool
	xlsx      string
	onError   string
	rejectLog string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

const rootLong = `samcut prints selected fields of SAM records, like cut(1) for SAM.

Each data line is split on tabs into the 11 mandatory fields followed by
optional NAME:TYPE:VALUE tags. Fields are printed in the order requested,
joined by the output delimiter. Names that a record does not have are
printed as the fill value. Header lines (starting with '@') are skipped.

Standard keys:
  qname flag rname pos mapq cigar rnext pnext tlen seq qual

Flag keys (1 if the bit is set, else 0):
  paired proper_pair unmap munmap reverse mreverse
  read1 read2 secondary qcfail dup supplementary

Special keys:
  n      1-based index of the record among parsed data lines
  flags  comma-separated names of the set flag bits
  std    all 11 standard keys (the default when no fields are given)

Any other key is looked up among the optional tags by name (e.g. NM, RG).`

const rootExample = `  samcut -f in.sam qname rname pos
  samtools view in.bam | samcut -H n qname flags NM
  samcut -d , -i NA -f in.sam std RG
  samcut --bam -f in.bam --xlsx reads.xlsx qname mapq
  samcut --on-error skip --reject-log rejected.log -f in.sam`

// NewRootCmd builds the samcut command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "samcut [flags] [fields...]",
		Short:   "Print selected fields of SAM records",
		Long:    rootLong,
		Example: rootExample,

		// Positional arguments are field names, not subcommands.
		Args: cobra.ArbitraryArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	// ==========================================================================
	// FLAGS
	// ==========================================================================

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "Path to a YAML configuration file (default ./"+defaultConfigFile+" if present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&opts.header, "header", "H", false, "Print a header row of the requested field names")
	flags.StringVarP(&opts.delim, "delim", "d", "\\t", "Output delimiter (a single character, or tab/comma/pipe/space/semicolon)")
	flags.StringVarP(&opts.fill, "fill", "i", ".", "Value printed for fields a record does not have")
	flags.StringVarP(&opts.file, "file", "f", "", "Input file (default stdin; .gz and .bam are detected)")
	flags.BoolVar(&opts.bam, "bam", false, "Read BAM instead of SAM text")
	flags.StringVar(&opts.xlsx, "xlsx", "", "Write rows to an XLSX workbook (a file, or a directory for a generated name)")
	flags.StringVar(&opts.onError, "on-error", string(config.PolicyAbort), "What to do with a malformed line: abort or skip")
	flags.StringVar(&opts.rejectLog, "reject-log", "", "Write skipped lines to this file (requires --on-error skip)")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the samcut command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// RUN
// =============================================================================

// loadConfig resolves the configuration file and applies explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions, args []string) (*config.Config, error) {
	path := opts.cfgFile
	if path == "" && utils.FileExists(defaultConfigFile) {
		path = defaultConfigFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("header") {
		cfg.Header = opts.header
	}
	if flags.Changed("delim") {
		cfg.Delim = opts.delim
	}
	if flags.Changed("fill") {
		cfg.Fill = opts.fill
	}
	if flags.Changed("on-error") {
		cfg.OnError = config.ErrorPolicy(opts.onError)
	}
	if flags.Changed("reject-log") {
		cfg.RejectLog = opts.rejectLog
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if len(args) > 0 {
		cfg.Fields = args
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) (err error) {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	zl, closeLog, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()
	logger := zl.With(zap.String("run", uuid.NewString())).Sugar()

	src, err := input.Open(opts.file, cmd.InOrStdin(), input.Options{BAM: opts.bam})
	if err != nil {
		return err
	}
	defer src.Close()

	var sink output.RowWriter
	if opts.xlsx != "" {
		xw, err := output.NewXLSXWriter(opts.xlsx, output.DefaultSheet)
		if err != nil {
			return err
		}
		logger.Debugf("writing workbook %s", xw.Path())
		sink = xw
	} else {
		sink = output.NewDelimitedWriter(cmd.OutOrStdout(), cfg.Delimiter())
	}
	// Rows written before an abort are still flushed.
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	p := pipeline.New(cfg, src, sink, logger)
	if opts.file != "" && opts.file != "-" {
		p.Source = opts.file
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debugf("wrote %d records from %d lines in %s (%d headers, %d skipped)",
		result.Stats.RecordsWritten,
		result.Stats.LinesRead,
		result.Stats.Elapsed,
		result.Stats.HeaderLines,
		result.Stats.LinesSkipped)
	if result.Stats.LinesSkipped > 0 {
		logger.Warnf("skipped %d malformed lines", result.Stats.LinesSkipped)
	}
	return nil
}
