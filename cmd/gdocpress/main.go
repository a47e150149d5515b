package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/use-agent/gdocpress/cleaner"
	"github.com/use-agent/gdocpress/config"
	"github.com/use-agent/gdocpress/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "gdocpress",
		Usage:           "restructures an exported document into anchor-linked or accordion HTML",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "ifile", Aliases: []string{"f"}, Usage: "path to input `FILE` (prompted for when omitted)"},
			&cli.StringFlag{Name: "ofile", Aliases: []string{"o"}, Usage: "path to output `FILE`, - for STDOUT"},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"},
				Usage: "document `VARIANT` (supported: " + strings.Join(config.PresetNames(), ", ") + ")"},
			&cli.BoolFlag{Name: "guidelines", Aliases: []string{"g"}, Usage: "for the single preset, the input is the guidelines document rather than the editorial policies"},
			&cli.StringFlag{Name: "mode", Usage: "output `SHAPE` overriding the preset (anchor, accordion-flat, accordion-nested)"},
			&cli.StringFlag{Name: "panel-ids", Usage: "accordion panel id `STYLE` (sequential, derived)"},
			&cli.StringFlag{Name: "comment-class", Usage: "comment container `CLASS`, skips discovery"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "drop elements matching CSS `SELECTOR` before segmentation (repeatable)"},
			&cli.StringFlag{Name: "format", Usage: "output `FORMAT` (html, markdown)"},
			&cli.BoolFlag{Name: "dump-config", Usage: "print the resolved configuration as YAML and exit"},
			&cli.BoolFlag{Name: "keep-going", Usage: "emit sections whose numbered lists cannot be reconciled instead of failing"},
		},
		Action: run,
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "gdocpress: %v\n", err)
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func run(_ context.Context, cmd *cli.Command) error {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()
	if path := cmd.String("config"); path != "" {
		if err := config.LoadFile(path, cfg); err != nil {
			return err
		}
	}
	applyFlags(cmd, cfg)

	if cmd.Bool("dump-config") {
		data, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	// ── 3. Resolve the document variant ─────────────────────────────
	ask := newPrompter(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())))

	if err := resolveGuidelines(cfg, ask); err != nil {
		return err
	}
	preset, err := config.LookupPreset(cfg.Preset, cfg.IsGuidelines())
	if err != nil {
		return err
	}

	input := cfg.Input
	if input == "" {
		if input, err = ask.ask("Enter path to input file", preset.Input); err != nil {
			return err
		}
	}
	if _, err := os.Stat(input); err != nil {
		return models.NewConvertError(models.ErrCodeInputNotFound,
			fmt.Sprintf("input file %s does not exist", input), err)
	}

	opts, err := cfg.Options(preset)
	if err != nil {
		return err
	}
	slog.Debug("gdocpress starting",
		"preset", preset.Name,
		"input", input,
		"scheme", opts.Scheme.String(),
		"mode", opts.Mode.String(),
	)

	// ── 4. Convert ──────────────────────────────────────────────────
	f, err := os.Open(input)
	if err != nil {
		return models.NewConvertError(models.ErrCodeInputNotFound, "cannot open input file", err)
	}
	defer f.Close()

	res, err := cleaner.NewConverter(opts).Convert(f)
	if err != nil {
		return err
	}

	// ── 5. Write ────────────────────────────────────────────────────
	output := cfg.OutputPath(preset)
	if output == "-" {
		_, err = os.Stdout.WriteString(res.Content)
		return err
	}
	if err := os.WriteFile(output, []byte(res.Content), 0o644); err != nil {
		return fmt.Errorf("unable to write output file '%s': %w", output, err)
	}
	slog.Info("output written", "file", output, "sections", res.Sections, "warnings", len(res.Warnings))
	return nil
}

// resolveGuidelines asks which "single" document is converted unless a
// flag, the environment or the config file already said so.
func resolveGuidelines(cfg *config.Config, ask *prompter) error {
	if !strings.EqualFold(cfg.Preset, "single") || cfg.Guidelines != nil {
		return nil
	}
	g, err := ask.confirm("Is this the guidelines document (no for editorial policies)?", false)
	if err != nil {
		return err
	}
	cfg.Guidelines = &g
	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	str := map[string]*string{
		"ifile":         &cfg.Input,
		"ofile":         &cfg.Output,
		"preset":        &cfg.Preset,
		"mode":          &cfg.Convert.Mode,
		"panel-ids":     &cfg.Convert.PanelIDs,
		"comment-class": &cfg.Convert.CommentClass,
		"format":        &cfg.Convert.Format,
	}
	for name, dst := range str {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}
	if cmd.IsSet("guidelines") {
		g := cmd.Bool("guidelines")
		cfg.Guidelines = &g
	}
	if cmd.IsSet("exclude") {
		cfg.Convert.Exclude = cmd.StringSlice("exclude")
	}
	if cmd.IsSet("keep-going") {
		cfg.Convert.KeepGoing = cmd.Bool("keep-going")
	}
}

// initLogger configures slog based on the LogConfig. Logs go to stderr so
// the document can be written to stdout.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
