package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/errors"
	"github.com/mcncl/cstyper/internal/pipeline"
	"github.com/mcncl/cstyper/internal/watch"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CLI defines the command-line interface
var CLI struct {
	Input          string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output         string `help:"Path to output C# file. If not specified, writes to stdout." short:"o" type:"path"`
	Config         string `help:"Path to a config file. Defaults to .cstyper.yml searched upwards from the working directory." short:"c" type:"path"`
	ClassName      string `help:"Name for the root class." short:"n"`
	Namespace      string `help:"Namespace wrapping the generated classes." short:"N"`
	Access         string `help:"Access modifier for generated classes (public, private, protected, internal, protected internal, private protected)." short:"a"`
	Static         bool   `help:"Make the root class and its properties static."`
	Nullable       bool   `help:"Append the nullable marker to every property type."`
	Attributes     bool   `help:"Put a serialization attribute carrying the original JSON key above each property." short:"A"`
	AttributeStyle string `help:"Attribute library to use: newtonsoft or system-text-json."`
	KeepNames      bool   `help:"Use JSON keys verbatim as property names instead of PascalCase."`
	BlockNamespace bool   `help:"Emit a block-scoped namespace instead of a file-scoped one."`
	NoFormat       bool   `help:"Skip normalising indentation and line endings of the output."`
	WriteConfig    bool   `help:"Save the effective settings to the config file and exit."`
	Watch          bool   `help:"Regenerate the output whenever the input file changes." short:"w"`
	Debug          bool   `help:"Enable debug logging." short:"d"`
	Version        bool   `help:"Show version information." short:"v"`
	Interactive    bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config     *config.Config
	ConfigPath string
}

// Version information
const (
	Version = "0.1.0"
)

// defaultConfigName is where --write-config saves when no config path is known.
const defaultConfigName = ".cstyper.yml"

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("cstyper"),
		kong.Description("A tool to convert JSON to C# classes"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError has already printed the usage
		os.Exit(1)
	}

	// No arguments at all means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("cstyper version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		setupLogging(ctx.Config.Dev.Debug)
		if ctx.ConfigPath != "" {
			log.Debug().Str("path", ctx.ConfigPath).Msg("using config file")
		}
		err = dispatch(ctx)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: cstyper --help\n")

		os.Exit(1)
	}
}

// setupLogging points the global logger at stderr. The level follows the
// merged settings, so both -d and dev.debug enable debug output.
func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		log.Logger = log.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Level(zerolog.InfoLevel)
	}
}

// overrides collects the settings given as flags.
func overrides() config.CLIOverrides {
	return config.CLIOverrides{
		ClassName:      CLI.ClassName,
		Namespace:      CLI.Namespace,
		AccessModifier: CLI.Access,
		AttributeStyle: CLI.AttributeStyle,
		Static:         CLI.Static,
		Nullable:       CLI.Nullable,
		Attributes:     CLI.Attributes,
		KeepNames:      CLI.KeepNames,
		BlockNamespace: CLI.BlockNamespace,
		NoFormat:       CLI.NoFormat,
		Debug:          CLI.Debug,
	}
}

// newContext loads the config file (explicit or discovered) and applies flags on top.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides())
	if err != nil {
		return nil, errors.NewConfigError("failed to load settings", err)
	}

	return &Context{Config: cfg, ConfigPath: configPath}, nil
}

// dispatch picks the mode requested on the command line.
func dispatch(ctx *Context) error {
	switch {
	case CLI.WriteConfig:
		return writeSettings(ctx)
	case CLI.Watch:
		return runWatch(ctx)
	default:
		return run(ctx)
	}
}

// writeSettings persists the effective settings.
func writeSettings(ctx *Context) error {
	path := ctx.ConfigPath
	if CLI.Config != "" {
		path = CLI.Config
	}
	if path == "" {
		path = defaultConfigName
	}
	if err := config.SaveConfig(path, ctx.Config); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to save settings to '%s'", path), err)
	}
	log.Info().Str("path", path).Msg("settings saved")
	return nil
}

// runWatch regenerates the output on every change to the input file until interrupted.
func runWatch(ctx *Context) error {
	if CLI.Input == "" {
		return errors.NewInputError("watch mode needs an input file", errors.ErrNoInput)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch.NewRunner(CLI.Input, CLI.Output, ctx.Config, log.Logger).Run(sigCtx)
}

// run executes the main program logic
func run(ctx *Context) error {
	result, err := generate(ctx.Config)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}
	log.Debug().
		Str("root", result.Model.Root.Name).
		Int("subclasses", len(result.Model.SubClasses)).
		Msg("generation finished")

	return writeOutput(result.Code)
}

// generate reads JSON from file, piped stdin or the interactive prompt and runs the pipeline
func generate(cfg *config.Config) (pipeline.Result, error) {
	if CLI.Input != "" {
		return pipeline.GenerateFile(CLI.Input, cfg)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return pipeline.Result{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			text, err := readInteractiveInput(os.Stdin)
			if err != nil {
				return pipeline.Result{}, err
			}
			return pipeline.Generate(text, cfg)
		}
		return pipeline.Result{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return pipeline.GenerateReader(os.Stdin, cfg)
}

// writeOutput writes code to file or stdout
func writeOutput(code string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(code), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		log.Info().Str("path", CLI.Output).Msg("generated C# code written")
		return nil
	}

	_, err := fmt.Println(strings.TrimSpace(code))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(in io.Reader) (string, error) {
	fmt.Fprintln(os.Stderr, "cstyper interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonBuilder.String(), nil
}
