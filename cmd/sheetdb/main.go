// Package main is the entry point for the sheetdb CLI.
//
// sheetdb gives record-oriented access to a workbook directory of JSONL
// sheets: list sheets, query rows, create rows and watch for external
// edits. Configuration is read from config.yaml with CLI flag overrides.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/maruel/sheetdb/internal/config"
	"github.com/maruel/sheetdb/internal/griddb"
	"github.com/maruel/sheetdb/internal/gridstore"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "sheetdb: %v\n", err)
		os.Exit(1)
	}
}

const usage = `usage: sheetdb [flags] <command> [args]

commands:
  sheets                 list sheet names in the workbook
  rows                   print every row of the sheet
  find <key>             print the row whose first column equals key
  where <col=value ...>  print rows matching all criteria by equality
  after <col=value ...>  print rows strictly greater than all criteria
  before <col=value ...> print non-empty rows strictly less than all criteria
  create <col=value ...> append a row; unknown columns are dropped
  watch                  report external edits of sheet files until interrupted
`

func mainImpl() error {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration")
	dir := flag.String("dir", "", "Workbook directory (overrides config)")
	sheetName := flag.String("sheet", "", "Sheet name (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error; overrides config)")
	noUnique := flag.Bool("no-unique-check", false, "Skip the first-column uniqueness check")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dir != "" {
		cfg.Workbook = *dir
	}
	if *sheetName != "" {
		cfg.Sheet = *sheetName
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *noUnique {
		cfg.SkipUniqueCheck = true
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	wb, err := gridstore.NewFileWorkbook(cfg.Workbook)
	if err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "sheets":
		names, err := wb.SheetNames()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	case "watch":
		slog.InfoContext(ctx, "Watching workbook", "dir", cfg.Workbook)
		return wb.Watch(ctx, func(sheet string) {
			slog.InfoContext(ctx, "Sheet modified externally", "sheet", sheet)
		})
	case "rows", "find", "where", "after", "before", "create":
		t, err := openTable(wb, cfg.Sheet, cfg.SkipUniqueCheck)
		if err != nil {
			return err
		}
		return runTableCmd(t, cmd, rest)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openTable(wb gridstore.Workbook, sheet string, skipUnique bool) (*griddb.Table, error) {
	if sheet == "" {
		return nil, errors.New("no sheet selected; pass -sheet or set it in config.yaml")
	}
	return griddb.Open(wb, sheet, griddb.Options{SkipUniqueCheck: skipUnique})
}

func runTableCmd(t *griddb.Table, cmd string, args []string) error {
	switch cmd {
	case "rows":
		rows, err := t.All()
		if err != nil {
			return err
		}
		printRows(t, rows)
		return nil
	case "find":
		if len(args) != 1 {
			return errors.New("find takes exactly one key")
		}
		row, err := t.Find(gridstore.Parse(args[0]))
		if err != nil {
			return err
		}
		printHeader(t)
		printRow(t, row)
		return nil
	case "where", "after", "before":
		criteria, err := parseCriteria(args)
		if err != nil {
			return err
		}
		var rows *griddb.Rows
		switch cmd {
		case "where":
			rows, err = t.Where(criteria)
		case "after":
			rows, err = t.After(criteria)
		case "before":
			rows, err = t.Before(criteria)
		}
		if err != nil {
			return err
		}
		printRows(t, rows)
		return nil
	case "create":
		fields, err := parseCriteria(args)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return errors.New("create needs at least one col=value")
		}
		return t.Create(fields)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// parseCriteria turns col=value arguments into fields, interpreting values
// like a spreadsheet entry bar (booleans, numbers, dates, text).
func parseCriteria(args []string) (griddb.Fields, error) {
	fields := make(griddb.Fields, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected col=value, got %q", arg)
		}
		fields[name] = gridstore.Parse(raw)
	}
	return fields, nil
}

func printHeader(t *griddb.Table) {
	cols := t.Columns()
	parts := make([]string, 0, len(cols)+1)
	parts = append(parts, "#")
	for _, c := range cols {
		parts = append(parts, c.Name)
	}
	fmt.Println(strings.Join(parts, "\t"))
}

func printRow(t *griddb.Table, r *griddb.Row) {
	cols := t.Columns()
	parts := make([]string, 0, len(cols)+1)
	parts = append(parts, fmt.Sprintf("%d", r.Position()))
	for _, c := range cols {
		parts = append(parts, r.Get(c.Name).String())
	}
	fmt.Println(strings.Join(parts, "\t"))
}

func printRows(t *griddb.Table, rows *griddb.Rows) {
	printHeader(t)
	for r := range rows.All() {
		printRow(t, r)
	}
}
