package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mcncl/jvalue/internal/analyzer"
	"github.com/mcncl/jvalue/internal/config"
	"github.com/mcncl/jvalue/internal/errors"
	"github.com/mcncl/jvalue/internal/formatter"
	"github.com/mcncl/jvalue/internal/parser"
	"github.com/mcncl/jvalue/internal/transform"
	"github.com/mcncl/jvalue/internal/value"
)

// CLI defines the command-line interface
var CLI struct {
	Input           string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output          string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config          string `help:"Path to YAML config file. Defaults to .jvalue.yml found in the current or a parent directory." short:"c" type:"path"`
	Level           int    `help:"Base indentation level, in spaces." short:"l" default:"0"`
	KeyCase         string `help:"Rename object keys: snake, screaming-snake, kebab, camel or lower-camel." short:"k"`
	Check           bool   `help:"Only validate the input; print nothing on success."`
	Stats           bool   `help:"Print document statistics instead of the formatted document." short:"s"`
	AllowScalarRoot bool   `help:"Accept a bare string, number, boolean or null as the document."`
	RejectTrailing  bool   `help:"Fail when content follows the document."`
	MaxDepth        int    `help:"Maximum nesting depth (0 keeps the configured limit)."`
	Debug           bool   `help:"Enable debug logging." short:"d"`
	Version         bool   `help:"Show version information." short:"v"`
	Interactive     bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jvalue"),
		kong.Description("Parse, validate and pretty-print JSON documents"),
		kong.UsageOnError(),
	)

	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := app.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jvalue version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jvalue --help\n")
		os.Exit(1)
	}
}

// newContext resolves the configuration and builds the logger
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		IndentLevel:        CLI.Level,
		KeyCase:            CLI.KeyCase,
		MaxDepth:           CLI.MaxDepth,
		AllowScalarRoot:    CLI.AllowScalarRoot,
		RejectTrailingData: CLI.RejectTrailing,
		Debug:              CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load config '%s'", configPath), err)
	}

	logger := newLogger(os.Stderr, cfg.Dev.Debug)
	if configPath != "" {
		level.Debug(logger).Log("msg", "loaded config", "path", configPath)
	}
	return &Context{Config: cfg, Logger: logger}, nil
}

func newLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	opts := cfg.ParserOptions()

	start := time.Now()
	v, err := parseInput(opts)
	if err != nil {
		return err
	}
	level.Debug(ctx.Logger).Log("msg", "parsed document", "root", v.Kind(), "duration", time.Since(start))

	if CLI.Check {
		return nil
	}

	if CLI.Stats {
		summary := analyzer.NewAnalyzer().Analyze(v)
		return writeOutput(ctx, formatSummary(summary))
	}

	namer, err := cfg.KeyNamer()
	if err != nil {
		return errors.NewConfigError("invalid key naming", err)
	}
	if namer != nil {
		v, err = transform.RenameKeys(v, namer)
		if err != nil {
			return errors.NewTransformError("failed to rename keys", err)
		}
		level.Debug(ctx.Logger).Log("msg", "renamed keys", "key_case", cfg.Output.KeyCase, "mappings", len(cfg.Output.KeyMappings))
	}

	return writeOutput(ctx, formatter.NewFormatter().Format(v, cfg.Output.IndentLevel))
}

// parseInput reads JSON from file or stdin
func parseInput(opts parser.Options) (value.Value, error) {
	var (
		v   value.Value
		err error
	)
	switch {
	case CLI.Input != "":
		v, err = parser.ParseFile(CLI.Input, opts)
	default:
		var text string
		text, err = readStdin()
		if err != nil {
			return value.Value{}, err
		}
		v, err = parser.ParseWithOptions(text, opts)
	}
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return value.Value{}, err
		}
		return value.Value{}, errors.NewParsingError("invalid document", err)
	}
	return v, nil
}

func readStdin() (string, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes text to file or stdout
func writeOutput(ctx *Context, text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		level.Info(ctx.Logger).Log("msg", "output written", "path", CLI.Output, "bytes", len(text)+1)
		return nil
	}

	if _, err := fmt.Println(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// formatSummary renders analyzer statistics as aligned text lines
func formatSummary(s analyzer.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "root:      %s\n", s.Root)
	fmt.Fprintf(&sb, "values:    %d\n", s.Total())
	fmt.Fprintf(&sb, "max depth: %d\n", s.MaxDepth)

	kinds := []value.Kind{value.KindObject, value.KindArray, value.KindString, value.KindInt, value.KindDouble, value.KindBool, value.KindNull}
	for _, k := range kinds {
		if n := s.Counts[k]; n > 0 {
			fmt.Fprintf(&sb, "%-10s %d\n", k.String()+":", n)
		}
	}

	fmt.Fprintf(&sb, "keys:      %d distinct", len(s.Keys))
	if len(s.Formats) > 0 {
		formats := make([]string, 0, len(s.Formats))
		for f, n := range s.Formats {
			formats = append(formats, fmt.Sprintf("%s=%d", f, n))
		}
		sort.Strings(formats)
		fmt.Fprintf(&sb, "\nformats:   %s", strings.Join(formats, ", "))
	}
	return sb.String()
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jvalue Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
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

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}
