package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/gallery/internal/logging"
	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/source"
	"github.com/nikbrunner/gallery/internal/storage"
	"github.com/nikbrunner/gallery/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string
	category   string
	layout     string

	config *storage.Config
	logger *zap.Logger
	client *source.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Terminal gallery for comics, art, NFTs and tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Open the interactive gallery
  gallery
  gallery --category art --layout single

  # Print items matching a search
  gallery list nft punk

  # Fuzzy find an item and copy its image URL
  gallery find comic watchmen

  # Check image links and export a category
  gallery check token
  gallery export art --format sqlite
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", envOr("GALLERY_CONFIG", ""), "Path to config file (default ~/.config/gallery/config.json)")
	cmd.Flags().StringVarP(&a.category, "category", "c", "", "Category to open (comic, art, nft, token)")
	cmd.Flags().StringVar(&a.layout, "layout", "", "Layout (compact, grid, single)")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newFindCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newExportCmd(a))

	return cmd
}

// setup loads config and builds the logger and source client.
func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		var err error
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("getting config path: %w", err)
		}
	}

	config, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.config = config

	logger, err := logging.New(config.LogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logger = logger

	client, err := source.NewClient(source.ClientParams{
		URLs:    config.Sources,
		Timeout: config.Timeout(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// runTUI runs the full interactive gallery.
func runTUI(a *app) error {
	category, err := a.config.Category()
	if a.category != "" {
		category, err = model.ParseCategory(a.category)
	}
	if err != nil {
		return err
	}

	layoutMode, err := a.config.Layout()
	if a.layout != "" {
		layoutMode, err = model.ParseLayout(a.layout)
	}
	if err != nil {
		return err
	}

	a.logger.Info("starting gallery",
		zap.Stringer("category", category),
		zap.Stringer("layout", layoutMode),
	)

	gallery := tui.NewApp(tui.AppParams{
		Fetcher:        a.client,
		Category:       category,
		Layout:         layoutMode,
		PageSize:       a.config.PageSize,
		SwipeThreshold: a.config.SwipeThreshold,
		Logger:         a.logger,
	})

	p := tea.NewProgram(gallery, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
