package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/EBI-Metabolights/mztab2mtbls/config"
)

func convertCmd(configPath, logLevel *string) *cobra.Command {
	var (
		inputFile    string
		outputDir    string
		accession    string
		engine       string
		image        string
		overrideJSON bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one or more mzTab-M files to ISA-Tab",
		Long: `Convert converts mzTab-M files (plain text or JSON) into the
MetaboLights ISA-Tab file set. The input may be a single file or a
glob pattern (doublestar syntax, e.g. 'data/**/*.mzTab'); each match
is converted as an independent run.`,
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

			inputs, err := expandInputs(inputFile)
			if err != nil {
				return err
			}

			for _, input := range inputs {
				// Each input is an independent run. Batch runs get one
				// subdirectory per input so file sets do not collide.
				runCfg := *cfg
				if len(inputs) > 1 {
					stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
					runCfg.Output.Dir = filepath.Join(cfg.Output.Dir, stem)
				}
				app := NewApp(&runCfg, logger)
				if err := app.ConvertFile(cmd.Context(), input); err != nil {
					return fmt.Errorf("convert %s: %w", input, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFile, "input-file", "", "mzTab-M file (.mzTab, .txt or .json) or glob pattern to convert")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to save the converted files")
	cmd.Flags().StringVar(&accession, "accession", "", "MetaboLights study accession number")
	cmd.Flags().StringVar(&engine, "container-engine", "", "container run engine (docker, podman)")
	cmd.Flags().StringVar(&image, "converter-image", "", "container image for the mzTab-M to json converter")
	cmd.Flags().BoolVar(&overrideJSON, "override-json", false, "re-run the json pre-conversion even when a json sibling exists")
	_ = cmd.MarkFlagRequired("input-file")
	return cmd
}

// applyFlagOverrides layers non-empty command-line flags on top of the
// loaded configuration.
func applyFlagOverrides(cfg *config.Config, accession, outputDir, engine, image string, overrideJSON bool) {
	if accession != "" {
		cfg.Study.Accession = accession
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if engine != "" {
		cfg.Converter.Engine = engine
	}
	if image != "" {
		cfg.Converter.Image = image
	}
	if overrideJSON {
		cfg.Converter.OverrideJSON = true
	}
}

// expandInputs resolves the input argument to concrete file paths. A
// plain path passes through; a glob pattern expands via doublestar.
func expandInputs(input string) ([]string, error) {
	if !strings.ContainsAny(input, "*?[{") {
		return []string{input}, nil
	}
	matches, err := doublestar.FilepathGlob(input)
	if err != nil {
		return nil, fmt.Errorf("bad input pattern %q: %w", input, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("input pattern %q matched no files", input)
	}
	return matches, nil
}
