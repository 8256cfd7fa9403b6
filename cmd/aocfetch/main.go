package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/henrytill/panels-go/internal"
	"github.com/henrytill/panels-go/internal/client/aoc"
	"github.com/henrytill/panels-go/internal/parser"
)

var (
	Version    = "0.1.0-dev"
	Commit     = "unknown"
	CommitDate = "unknown"
	TreeState  = "unknown"
)

func showVersion(w io.Writer) {
	fmt.Fprintf(w, "aocfetch %s\n", Version)
}

func showUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: aocfetch <subcommand> [options] YEAR/DAY\n\n")
	fmt.Fprintln(w, "Fetch puzzle inputs and descriptions for the panels solver")
	fmt.Fprintln(w, "\nSubcommands:")
	fmt.Fprintln(w, "  input        - Personal puzzle input (requires a session)")
	fmt.Fprintln(w, "  description  - Puzzle description page (HTML)")
	fmt.Fprintln(w, "  example      - Panels from the description's worked example")
	fmt.Fprintln(w, "  version      - Show version")
	fmt.Fprintln(w, "  help         - Show this help")
	fmt.Fprintln(w, "\nSession:")
	fmt.Fprintf(w, "  Set %s, or add \"session: <token>\" to the config file\n", internal.EnvSession)
	fmt.Fprintf(w, "  ($%s or ~/.config/panels/config.yaml)\n", internal.EnvConfig)
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintln(w, "  aocfetch input 2025/10 -o 10.input")
	fmt.Fprintln(w, "  aocfetch example 2025/10 | panels -")
}

type command struct {
	stdout io.Writer
	stderr io.Writer
	config *internal.Config
}

func (c *command) newClient() *aoc.Client {
	client := aoc.NewClient(c.config.Session).WithCacheDir(c.config.CacheDir)
	if c.config.BaseURL != "" {
		client.WithBaseURL(c.config.BaseURL)
	}
	return client
}

type fetchFlags struct {
	output  string
	timeout time.Duration
	puzzle  aoc.Puzzle
}

func (c *command) parseFetchFlags(name string, args []string) (*fetchFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	flags := &fetchFlags{}
	fs.StringVar(&flags.output, "o", "", "Output file (defaults to stdout)")
	fs.DurationVar(&flags.timeout, "timeout", 2*time.Minute, "Abort after this long")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%s requires exactly one YEAR/DAY argument", name)
	}

	puzzle, err := aoc.ParsePuzzle(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	flags.puzzle = puzzle
	return flags, nil
}

func (c *command) write(output string, data []byte) error {
	if output == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0600)
}

func (c *command) handleInput(args []string) error {
	flags, err := c.parseFetchFlags("input", args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
	defer cancel()

	data, err := c.newClient().Input(ctx, flags.puzzle)
	if err != nil {
		return fmt.Errorf("failed to fetch input for %s: %w", flags.puzzle, err)
	}
	return c.write(flags.output, data)
}

func (c *command) handleDescription(args []string) error {
	flags, err := c.parseFetchFlags("description", args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
	defer cancel()

	data, err := c.newClient().Description(ctx, flags.puzzle)
	if err != nil {
		return fmt.Errorf("failed to fetch description for %s: %w", flags.puzzle, err)
	}
	return c.write(flags.output, data)
}

func (c *command) handleExample(args []string) error {
	flags, err := c.parseFetchFlags("example", args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
	defer cancel()

	data, err := c.newClient().Description(ctx, flags.puzzle)
	if err != nil {
		return fmt.Errorf("failed to fetch description for %s: %w", flags.puzzle, err)
	}

	panels, err := parser.NewHTMLParser().Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("no example in %s: %w", flags.puzzle, err)
	}

	var buf bytes.Buffer
	for _, p := range panels {
		fmt.Fprintln(&buf, p)
	}
	return c.write(flags.output, buf.Bytes())
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		showUsage(stderr)
		return 1
	}

	config, err := internal.LoadConfig(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	c := &command{stdout: stdout, stderr: stderr, config: config}

	subcommand := args[0]

	switch subcommand {
	case "version", "--version", "-V":
		showVersion(stdout)
		return 0
	case "help", "--help", "-h":
		showUsage(stdout)
		return 0
	case "input":
		err = c.handleInput(args[1:])
	case "description":
		err = c.handleDescription(args[1:])
	case "example":
		err = c.handleExample(args[1:])
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", subcommand)
		showUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
