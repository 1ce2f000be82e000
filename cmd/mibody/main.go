package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bbrard/mibody/internal/config"
	"github.com/bbrard/mibody/internal/output"
	"github.com/bbrard/mibody/internal/record"
	"github.com/bbrard/mibody/pkg/mibody"
)

type flags struct {
	configPath string
	unit       string
	format     string
	logLevel   string
	hex        bool
}

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "mibody [file...]",
		Short: "Decode body-composition scale records",
		Long: "mibody decodes the 24-byte records stored by body-composition scales.\n" +
			"Files are read in order; with no file, or with '-', standard input is used.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			if err := cfg.ApplyLogging(logger); err != nil {
				return err
			}
			enc, err := output.Lookup(cfg.Format)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			opts := mibody.Options{Unit: cfg.Unit, Logger: logger}
			var records []*record.ScaleRecord
			for _, name := range args {
				recs, err := runFile(cmd.Context(), cmd.InOrStdin(), name, f.hex, opts, logger)
				if err != nil {
					return err
				}
				records = append(records, recs...)
			}
			return enc.Encode(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a YAML configuration file")
	cmd.Flags().StringVar(&f.unit, "unit", "", "display unit for weights: lb, kg or st")
	cmd.Flags().StringVar(&f.format, "format", "", fmt.Sprintf("output format %v", output.Names()))
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.hex, "hex", false, "treat input as a hex dump instead of raw bytes")
	return cmd
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)
	ctx := context.Background()
	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Fatal(err)
	}
}

func resolveConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("unit") {
		cfg.Unit = f.unit
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = f.format
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

// runFile decodes a single input. Records of all inputs are rendered
// together so that structured formats stay a single document.
func runFile(ctx context.Context, stdin io.Reader, name string, isHex bool, opts mibody.Options, logger logrus.FieldLogger) ([]*record.ScaleRecord, error) {
	src := stdin
	if name != "-" {
		fh, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer fh.Close()
		src = fh
	}

	var (
		result mibody.Result
		err    error
	)
	if isHex {
		var text []byte
		text, err = io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		result, err = mibody.ParseHex(ctx, string(text), opts)
	} else {
		result, err = mibody.ParseReader(ctx, src, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	entry := logger.WithFields(logrus.Fields{
		"input":   name,
		"bytes":   result.ByteCount,
		"records": len(result.Records),
		"reason":  result.Reason.String(),
	})
	switch {
	case result.Truncated():
		entry.Warn("stopped at corrupted record")
	case len(result.Records) == 0 && result.ByteCount > 0:
		entry.Warn("no records decoded, input length is not a multiple of the record size")
	default:
		entry.Debug("decoded input")
	}

	return result.Records, nil
}
