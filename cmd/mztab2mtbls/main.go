// Package main provides the mztab2mtbls binary entry point: a converter
// that maps mzTab-M metabolomics metadata onto the MetaboLights ISA-Tab
// model.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/EBI-Metabolights/mztab2mtbls/config"
)

const (
	Version = "0.1.0"
	appName = "mztab2mtbls"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Convert mzTab-M metabolomics metadata to MetaboLights ISA-Tab",
		Version: Version,
		Long: `mztab2mtbls converts mass-spectrometry metabolomics metadata in
mzTab-M format (plain text or JSON) into the ISA-Tab file set used by
the MetaboLights repository.

Plain-text mzTab-M inputs are first converted to their JSON shape by
the containerized jmztab-m tool; the JSON is normalized, mapped through
the metadata pipeline and written as i_/s_/a_/m_ ISA-Tab files.

Neither the mzTab-M input nor the produced ISA-Tab files are fully
validated by this tool.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (overrides layered lookup)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(&configPath, &logLevel))
	cmd.AddCommand(watchCmd(&configPath, &logLevel))
	return cmd
}

// setupLogger builds the process logger at the requested level.
func setupLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig resolves the effective configuration: an explicit file
// when given, the layered loader otherwise.
func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}
