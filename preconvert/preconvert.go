// Package preconvert invokes the external containerized jmztab-m tool
// that turns a plain-text mzTab-M file into its JSON representation.
// The contract is file-in/file-out with a fixed timeout; any failure is
// terminal for the whole conversion run.
package preconvert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ToolError reports a failed or timed-out pre-conversion, carrying the
// captured diagnostic output of the external tool.
type ToolError struct {
	TimedOut bool
	Output   string
	Err      error
}

func (e *ToolError) Error() string {
	if e.TimedOut {
		return "pre-conversion: external tool timed out"
	}
	return fmt.Sprintf("pre-conversion: external tool failed: %v", e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Runner invokes the containerized converter.
type Runner struct {
	// Engine is the container run engine (docker, podman).
	Engine string
	// Image is the converter container image.
	Image string
	// Timeout bounds one invocation.
	Timeout time.Duration
	// Logger for diagnostics; nil falls back to slog.Default.
	Logger *slog.Logger
}

// Convert runs the external tool against inputPath and returns the path
// of the produced JSON file. The input's directory is mounted into the
// container; the tool writes <input>.json next to the input.
func (r *Runner) Convert(ctx context.Context, inputPath string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return "", fmt.Errorf("resolve input path: %w", err)
	}
	dir := filepath.Dir(absPath)
	file := filepath.Base(absPath)
	jsonPath := absPath + ".json"

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	args := []string{
		"run", "--rm",
		"-v", dir + ":/home/data:rw",
		"--workdir=/home/data",
		r.Image,
		"jmztab-m",
		"-c", "/home/data/" + file,
		"--toJson",
		"-o", "/home/data/" + file + "_validation.txt",
	}
	logger.Info("running mzTab-M json pre-conversion",
		slog.String("engine", r.Engine),
		slog.String("image", r.Image),
		slog.String("input", absPath),
	)

	cmd := exec.CommandContext(ctx, r.Engine, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ToolError{TimedOut: true, Output: string(output), Err: ctx.Err()}
		}
		return "", &ToolError{Output: string(output), Err: err}
	}

	if _, err := os.Stat(jsonPath); err != nil {
		return "", &ToolError{
			Output: string(output),
			Err:    fmt.Errorf("tool exited cleanly but produced no %s: %w", jsonPath, err),
		}
	}
	logger.Debug("pre-conversion produced json", slog.String("path", jsonPath))
	return jsonPath, nil
}
