package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"blockedit/internal/clipboard"
	"blockedit/internal/config"
	"blockedit/internal/domain"
	"blockedit/internal/eventbus"
	"blockedit/internal/logging"
	"blockedit/internal/logic"
	"blockedit/internal/ui"
	"blockedit/internal/ui/services/selection"
)

// flags holds the global command line options
type flags struct {
	ConfigPath  string
	LogLevel    string
	LogFile     string
	Mode        string
	NoClipboard bool
	SaveConfig  bool
}

// uiEvents are the bus events the status line reports
var uiEvents = []eventbus.EventType{
	eventbus.EventAllBlocksSelected,
	eventbus.EventBlocksCopied,
	eventbus.EventBlocksRemoved,
	eventbus.EventBlocksReplaced,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

func main() {
	f := &flags{}

	app := &cli.Command{
		Name:      "blockedit",
		Usage:     "Edit a document made of blocks in the terminal",
		UsageText: "blockedit [options] [kind:]content ...",
		Description: `Each argument becomes one block. Prefix an argument with a block kind
(paragraph, header, list, image, quote) and a colon to set its kind.

ctrl+a selects every block, ctrl+c copies the selected blocks as markup,
and typing while blocks are selected replaces them.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BLOCKEDIT_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); overrides the config",
				Sources:     cli.EnvVars("BLOCKEDIT_LOG_LEVEL"),
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file; logs are discarded when unset",
				Sources:     cli.EnvVars("BLOCKEDIT_LOG_FILE"),
				Destination: &f.LogFile,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "select-all mode (immediate, progressive)",
				Destination: &f.Mode,
			},
			&cli.BoolFlag{
				Name:        "no-clipboard",
				Usage:       "keep copied blocks in memory instead of the system clipboard",
				Destination: &f.NoClipboard,
			},
			&cli.BoolFlag{
				Name:        "save-config",
				Usage:       "write the effective configuration to the config file on start",
				Destination: &f.SaveConfig,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, f, c.Args().Slice())
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "blockedit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f *flags, args []string) error {
	configSvc := config.NewConfigService(f.ConfigPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg, f); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()
	log.Logger = logger

	bus := eventbus.New(logger)
	defer bus.Close()
	configSvc = config.NewConfigServiceWithBus(f.ConfigPath, bus)

	store := logic.NewMemoryBlockStore()
	seedBlocks(store, args)

	model, err := ui.NewModel(cfg, ui.Deps{
		Store:     store,
		Bus:       bus,
		Clipboard: newClipboard(cfg),
		Log:       logger,
	})
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Bus handlers run off the update loop; events reach the model as messages
	eventChan := make(chan domain.DomainEvent, 100)
	for _, et := range uiEvents {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				logger.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
			}
		})
	}
	go func() {
		for e := range eventChan {
			p.Send(ui.EventMsg{Event: e})
		}
	}()

	if f.SaveConfig {
		if err := configSvc.Save(cfg); err != nil {
			logger.Warn().Err(err).Msg("failed to save config")
		}
	}

	logger.Info().Int("blocks", store.Len()).Str("mode", cfg.Selection.SelectAllMode).Msg("starting UI")
	_, err = p.Run()

	// Drain the bus before closing the channel its handlers write to
	bus.Close()
	close(eventChan)
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info().Msg("UI exited normally")
	return nil
}

// applyFlags layers command line options over the loaded config
func applyFlags(cfg *config.Config, f *flags) error {
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.Mode != "" {
		cfg.Selection.SelectAllMode = f.Mode
	}
	if f.NoClipboard {
		cfg.Clipboard.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func newClipboard(cfg *config.Config) selection.Clipboard {
	if !cfg.Clipboard.Enabled {
		return clipboard.NewMemory()
	}
	system := clipboard.NewSystem()
	if system.Unsupported() {
		log.Warn().Msg("no system clipboard available, copies stay in memory")
		return clipboard.NewMemory()
	}
	return system
}

// seedBlocks appends one block per argument. An argument of the form
// kind:content sets the block kind; anything else is a paragraph.
func seedBlocks(store *logic.MemoryBlockStore, args []string) {
	for _, arg := range args {
		kind := domain.BlockParagraph
		content := arg
		if name, rest, ok := strings.Cut(arg, ":"); ok {
			if k, known := domain.ParseBlockKind(name); known {
				kind, content = k, rest
			}
		}
		store.Append(kind, content)
	}

	if store.Len() == 0 {
		store.Append(domain.BlockParagraph, "")
	}
}
