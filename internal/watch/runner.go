package watch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/errors"
	"github.com/mcncl/cstyper/internal/pipeline"
	"github.com/rs/zerolog"
)

// Runner regenerates the output file from the input file on every change.
// A failed generation is logged and the previous output is left as it was.
type Runner struct {
	input  string
	output string
	cfg    *config.Config
	logger zerolog.Logger
	stdout io.Writer
}

// NewRunner creates a Runner. An empty output writes generated code to stdout.
func NewRunner(input, output string, cfg *config.Config, logger zerolog.Logger) *Runner {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Runner{
		input:  input,
		output: output,
		cfg:    cfg,
		logger: logger,
		stdout: os.Stdout,
	}
}

// Regenerate runs the pipeline once and writes the result.
func (r *Runner) Regenerate() error {
	result, err := pipeline.GenerateFile(r.input, r.cfg)
	if err != nil {
		r.logger.Error().Str("input", r.input).Msg(errors.UserFriendlyError(err))
		return err
	}

	for _, w := range result.Warnings {
		r.logger.Warn().Str("input", r.input).Msg(w)
	}

	if err := r.write(result.Code); err != nil {
		r.logger.Error().Err(err).Str("output", r.output).Msg("failed to write output")
		return err
	}

	r.logger.Info().
		Str("input", r.input).
		Int("classes", len(result.Model.SubClasses)+1).
		Msg("regenerated")
	return nil
}

func (r *Runner) write(code string) error {
	if r.output == "" {
		_, err := fmt.Fprint(r.stdout, code)
		return err
	}
	if err := os.WriteFile(r.output, []byte(code), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to '%s'", r.output), err)
	}
	return nil
}

// Run generates once, then regenerates after every debounced change to the
// input until ctx is done. Generation errors never stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	_ = r.Regenerate()

	debouncer := NewDebouncer(r.cfg.Watch.Debounce, func() {
		_ = r.Regenerate()
	})
	defer debouncer.Stop()

	fw, err := NewFileWatcher(r.input, func(string) { debouncer.Trigger() }, r.logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	r.logger.Info().Str("input", r.input).Dur("debounce", r.cfg.Watch.Debounce).Msg("watching for changes")

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
