// Package pipeline runs a generation request end to end: validation,
// inference, emission and optional formatting.
package pipeline

import (
	"io"

	"github.com/mcncl/cstyper/internal/analyzer"
	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/formatter"
	"github.com/mcncl/cstyper/internal/generator"
	"github.com/mcncl/cstyper/internal/models"
	"github.com/mcncl/cstyper/internal/parser"
)

// Result is the output of one successful generation.
type Result struct {
	Code     string
	Model    models.GeneratedModel
	Warnings []string
}

// Generate turns JSON text into C# source under cfg. The first error stops
// the run and no partial output is returned.
func Generate(text string, cfg *config.Config) (Result, error) {
	root, err := parser.ValidateAndParse(text)
	if err != nil {
		return Result{}, err
	}
	return generate(root, cfg)
}

// GenerateReader is Generate for JSON read from r.
func GenerateReader(r io.Reader, cfg *config.Config) (Result, error) {
	root, err := parser.Parse(r)
	if err != nil {
		return Result{}, err
	}
	return generate(root, cfg)
}

// GenerateFile is Generate for the JSON file at path.
func GenerateFile(path string, cfg *config.Config) (Result, error) {
	root, err := parser.ParseFile(path)
	if err != nil {
		return Result{}, err
	}
	return generate(root, cfg)
}

func generate(root models.JSONValue, cfg *config.Config) (Result, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	a := analyzer.NewAnalyzerWithConfig(cfg)
	model, err := a.Infer(root, cfg.Policy.ClassName)
	if err != nil {
		return Result{}, err
	}

	code := generator.NewGenerator().Emit(model, cfg.Policy)

	if cfg.Formatting.Enabled {
		code, err = formatter.NewFormatterWithConfig(cfg.Formatting).Format(code)
		if err != nil {
			return Result{}, err
		}
	}

	return Result{Code: code, Model: model, Warnings: a.Warnings()}, nil
}
