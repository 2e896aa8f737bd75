package main

import (
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/cobra"

	"github.com/radekwlsk/go-tsp/utils/str"
)

var (
	logLevel  string
	logFormat string
	logger    log.Logger = log.NewNopLogger()
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"logfmt", "json"}
)

var rootCmd = &cobra.Command{
	Use:   "gotsp",
	Short: "Travelling salesman tours with an adaptive ant colony",
	Long: `gotsp plans closed tours over points on a plane. The ant colony planner
combines probabilistic tour construction with 2-opt local search and adapts
its weights when the search stagnates; a greedy nearest neighbour planner is
available as a baseline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		logger, err = newLogger(cmd.ErrOrStderr(), logFormat, logLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "logfmt", "Log format (logfmt, json)")
}

func newLogger(w io.Writer, format, lvl string) (log.Logger, error) {
	if !str.In(format, logFormats) {
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	var l log.Logger
	{
		w = log.NewSyncWriter(w)
		if format == "json" {
			l = log.NewJSONLogger(w)
		} else {
			l = log.NewLogfmtLogger(w)
		}
		l = log.With(l, "ts", log.DefaultTimestampUTC)
		l = log.With(l, "caller", log.DefaultCaller)
	}

	switch lvl {
	case "debug":
		l = level.NewFilter(l, level.AllowDebug())
	case "info":
		l = level.NewFilter(l, level.AllowInfo())
	case "warn":
		l = level.NewFilter(l, level.AllowWarn())
	case "error":
		l = level.NewFilter(l, level.AllowError())
	default:
		return nil, fmt.Errorf("unknown log level %q, available levels are: %v", lvl, logLevels)
	}
	return l, nil
}

