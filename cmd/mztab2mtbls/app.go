package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/EBI-Metabolights/mztab2mtbls/config"
	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mapper"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
	"github.com/EBI-Metabolights/mztab2mtbls/preconvert"
)

// App wires the conversion stages together: pre-conversion, source
// model construction, the mapping pipeline and serialization. One App
// serves many runs; each run owns its own model pair.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewApp creates an App for the given configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger}
}

// ConvertFile converts one mzTab-M file into the ISA-Tab file set under
// the configured output directory. Any stage failure aborts the run; no
// files are written unless the whole pipeline succeeded.
func (a *App) ConvertFile(ctx context.Context, inputPath string) error {
	jsonPath, err := a.resolveJSON(ctx, inputPath)
	if err != nil {
		return err
	}

	src, err := mztab.Read(jsonPath)
	if err != nil {
		return err
	}

	accession := a.cfg.Study.Accession
	dst := isatab.NewStudyModel(accession)

	pipeline := mapper.NewPipeline(a.logger)
	if err := pipeline.Run(src, dst); err != nil {
		return err
	}

	outDir := filepath.Join(a.cfg.Output.Dir, accession)
	if err := isatab.WriteStudyModel(dst, outDir); err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	a.logger.Info("conversion complete",
		slog.String("input", inputPath),
		slog.String("output", outDir),
	)
	return nil
}

// resolveJSON returns the JSON representation of the input, invoking
// the external pre-conversion tool when the input is plain-text mzTab-M
// and no usable JSON sibling exists.
func (a *App) resolveJSON(ctx context.Context, inputPath string) (string, error) {
	if mztab.IsJSON(inputPath) {
		return inputPath, nil
	}

	jsonPath := inputPath + ".json"
	if !a.cfg.Converter.OverrideJSON {
		if _, err := os.Stat(jsonPath); err == nil {
			a.logger.Info("using existing json sibling", slog.String("path", jsonPath))
			return jsonPath, nil
		}
	}

	runner := &preconvert.Runner{
		Engine:  a.cfg.Converter.Engine,
		Image:   a.cfg.Converter.Image,
		Timeout: a.cfg.Converter.Timeout,
		Logger:  a.logger,
	}
	return runner.Convert(ctx, inputPath)
}
