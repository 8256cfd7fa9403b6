package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/henrytill/panels-go/internal"
	"github.com/henrytill/panels-go/internal/client/aoc"
	"github.com/henrytill/panels-go/internal/formatter"
	"github.com/henrytill/panels-go/internal/panel"
	"github.com/henrytill/panels-go/internal/solver"
	"golang.org/x/text/language"
)

var (
	Version    = "0.1.0-dev"
	Commit     = "unknown"
	CommitDate = "unknown"
	TreeState  = "unknown"
)

type Options struct {
	InputFormat  string
	OutputFormat string
	OutputFile   string
	Mode         string
	Workers      int
	Timeout      time.Duration
	Language     string
	Fetch        string
	Example      bool
	Info         bool
	Verbose      bool
	Version      bool
	InputFile    string
}

func showUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] FILE\n", fs.Name())
	fmt.Fprintf(w, "       %s [OPTIONS] -fetch YEAR/DAY [-example]\n\n", fs.Name())
	fmt.Fprintln(w, "Compute the fewest button presses for every machine panel in FILE")
	fmt.Fprintln(w, "(use - for standard input).")
	fmt.Fprintln(w, "\nOptions:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func parseFlags(args []string, config *internal.Config) (*Options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("panels", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := &Options{
		Workers:  config.Workers,
		Timeout:  config.Timeout,
		Language: config.Language,
	}

	fs.StringVar(&opts.InputFormat, "f", "", "Input format (text, markdown, html, yaml)")
	fs.StringVar(&opts.InputFormat, "from", "", "Input format (text, markdown, html, yaml)")
	fs.StringVar(&opts.OutputFormat, "t", "text", "Output format (text, yaml, html)")
	fs.StringVar(&opts.OutputFormat, "to", "text", "Output format (text, yaml, html)")
	fs.StringVar(&opts.OutputFile, "o", "", "Output file (defaults to stdout)")
	fs.StringVar(&opts.Mode, "m", "both", "Mode (toggle, depletion, both)")
	fs.StringVar(&opts.Mode, "mode", "both", "Mode (toggle, depletion, both)")
	fs.IntVar(&opts.Workers, "j", opts.Workers, "Panels solved in parallel (0 = GOMAXPROCS)")
	fs.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Abort after this long (0 = no limit)")
	fs.StringVar(&opts.Language, "lang", opts.Language, "Language used to format totals")
	fs.StringVar(&opts.Fetch, "fetch", "", "Fetch puzzle YEAR/DAY instead of reading FILE")
	fs.BoolVar(&opts.Example, "example", false, "With -fetch, solve the example from the puzzle description")
	fs.BoolVar(&opts.Info, "info", false, "Show panel count and exit")
	fs.BoolVar(&opts.Verbose, "v", false, "Report progress on stderr")
	fs.BoolVar(&opts.Version, "version", false, "Show version")
	fs.BoolVar(&opts.Version, "V", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	if opts.Version {
		return opts, fs, nil
	}

	rest := fs.Args()
	switch {
	case opts.Fetch != "" && len(rest) == 0:
	case opts.Fetch != "":
		return nil, fs, fmt.Errorf("-fetch and an input file are mutually exclusive")
	case len(rest) == 0:
		return nil, fs, fmt.Errorf("input file required")
	case len(rest) > 1:
		return nil, fs, fmt.Errorf("exactly one input file required, got %d", len(rest))
	default:
		opts.InputFile = rest[0]
	}

	if opts.Example && opts.Fetch == "" {
		return nil, fs, fmt.Errorf("-example requires -fetch")
	}

	return opts, fs, nil
}

func modes(name string) ([]solver.Mode, error) {
	if name == "both" {
		return []solver.Mode{solver.Toggle, solver.Depletion}, nil
	}
	m, err := solver.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return []solver.Mode{m}, nil
}

// readInput returns the raw input, a name for reports, and the format to
// parse it with.
func readInput(ctx context.Context, opts *Options, config *internal.Config, stdin io.Reader) ([]byte, string, internal.Format, error) {
	if opts.Fetch != "" {
		puzzle, err := aoc.ParsePuzzle(opts.Fetch)
		if err != nil {
			return nil, "", internal.Format{}, err
		}
		client := aoc.NewClient(config.Session).WithCacheDir(config.CacheDir)
		if config.BaseURL != "" {
			client.WithBaseURL(config.BaseURL)
		}
		if opts.Example {
			data, err := client.Description(ctx, puzzle)
			return data, puzzle.String() + " example", internal.HTML, err
		}
		data, err := client.Input(ctx, puzzle)
		return data, puzzle.String(), internal.Text, err
	}

	var format internal.Format
	if opts.InputFormat != "" {
		f, err := internal.ParseInputFormat(opts.InputFormat)
		if err != nil {
			return nil, "", internal.Format{}, err
		}
		format = f
	} else if opts.InputFile == "-" {
		format = internal.Text
	} else {
		f, ok := internal.DetectInputFormat(opts.InputFile)
		if !ok {
			return nil, "", internal.Format{}, fmt.Errorf("no parser for file: %s", opts.InputFile)
		}
		format = f
	}

	if opts.InputFile == "-" {
		data, err := io.ReadAll(stdin)
		return data, "stdin", format, err
	}

	if _, err := os.Stat(opts.InputFile); os.IsNotExist(err) {
		return nil, "", internal.Format{}, fmt.Errorf("input file does not exist: %s", opts.InputFile)
	}
	data, err := os.ReadFile(opts.InputFile)
	if err != nil {
		return nil, "", internal.Format{}, fmt.Errorf("error opening input file: %w", err)
	}
	return data, opts.InputFile, format, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	config, err := internal.LoadConfig(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, fs, err := parseFlags(args, config)
	if errors.Is(err, flag.ErrHelp) {
		showUsage(stdout, fs)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		showUsage(stderr, fs)
		return 1
	}

	if opts.Version {
		fmt.Fprintf(stdout, "panels %s\n", Version)
		return 0
	}

	selectedModes, err := modes(opts.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	outputFormat, err := internal.ParseOutputFormat(opts.OutputFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	data, source, inputFormat, err := readInput(ctx, opts, config, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Only show processing messages if not outputting to stdout
	if opts.OutputFile != "" || opts.Verbose {
		fmt.Fprintf(stderr, "Processing: %s\n", source)
		fmt.Fprintf(stderr, "Input format: %s\n", inputFormat)
		fmt.Fprintf(stderr, "Output format: %s\n", outputFormat)
	}

	selectedParser, err := internal.NewDefaultParserRegistry().GetParser(inputFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	panels, err := selectedParser.Parse(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing %s: %v\n", source, err)
		return 1
	}

	if opts.Info {
		withJoltage := 0
		for _, p := range panels {
			if p.HasJoltage() {
				withJoltage++
			}
		}
		fmt.Fprintf(stdout, "Input contains %d panels (%d with joltage requirements)\n", len(panels), withJoltage)
		return 0
	}

	doc := &formatter.Document{Source: source, Panels: panels}
	status := 0
	for _, mode := range selectedModes {
		report, err := solve(ctx, panels, mode, opts, stderr)
		if err != nil && !errors.Is(err, solver.ErrInconsistent) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
		doc.Reports = append(doc.Reports, report)
	}

	if err := writeOutput(opts, outputFormat, doc, stdout); err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return 1
	}
	return status
}

func solve(ctx context.Context, panels []*panel.Panel, mode solver.Mode, opts *Options, stderr io.Writer) (solver.Report, error) {
	var onResult func(solver.Result)
	if opts.Verbose {
		onResult = func(res solver.Result) {
			if res.Solvable {
				fmt.Fprintf(stderr, "%s: panel %d: %d presses (%v)\n", mode, res.Index+1, res.Presses, res.Elapsed.Round(time.Microsecond))
			} else {
				fmt.Fprintf(stderr, "%s: panel %d: unsolvable (%v)\n", mode, res.Index+1, res.Elapsed.Round(time.Microsecond))
			}
		}
	}

	return solver.Sum(ctx, panels, mode, solver.Options{
		Workers:  opts.Workers,
		OnResult: onResult,
	})
}

func writeOutput(opts *Options, format internal.Format, doc *formatter.Document, stdout io.Writer) error {
	selectedFormatter, err := internal.NewDefaultFormatterRegistry().GetFormatter(format)
	if err != nil {
		return err
	}
	if tf, ok := selectedFormatter.(*formatter.TextFormatter); ok && opts.Language != "" {
		tag, err := language.Parse(opts.Language)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", opts.Language, err)
		}
		tf.WithLanguage(tag)
	}

	output := stdout
	if opts.OutputFile != "" {
		file, err := os.Create(opts.OutputFile)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()
		output = file
	}

	return selectedFormatter.Format(output, doc)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
