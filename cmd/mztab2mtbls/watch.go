package main

import (
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/EBI-Metabolights/mztab2mtbls/watch"
)

func watchCmd(configPath, logLevel *string) *cobra.Command {
	var (
		dir          string
		outputDir    string
		accession    string
		engine       string
		image        string
		overrideJSON bool
		debounce     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and convert mzTab-M files as they arrive",
		Long: `Watch observes a directory and converts every mzTab-M file that
appears in it. Each file is an independent conversion run; a failed
run is logged and the watcher keeps going.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(*logLevel)
			cfg, err := loadConfig(*configPath, logger)
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg, accession, outputDir, engine, image, overrideJSON)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watcher, err := watch.New(dir, debounce, logger)
			if err != nil {
				return err
			}
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = watcher.Stop() }()

			app := NewApp(cfg, logger)
			for path := range watcher.Events() {
				if err := app.ConvertFile(ctx, path); err != nil {
					logger.Error("conversion failed",
						slog.String("input", path),
						slog.String("error", err.Error()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to watch for mzTab-M files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to save the converted files")
	cmd.Flags().StringVar(&accession, "accession", "", "MetaboLights study accession number")
	cmd.Flags().StringVar(&engine, "container-engine", "", "container run engine (docker, podman)")
	cmd.Flags().StringVar(&image, "converter-image", "", "container image for the mzTab-M to json converter")
	cmd.Flags().BoolVar(&overrideJSON, "override-json", false, "re-run the json pre-conversion even when a json sibling exists")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a new file is converted")
	return cmd
}
