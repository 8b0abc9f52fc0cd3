package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/gallery/internal/culler"
	"github.com/nikbrunner/gallery/internal/exporter"
	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/picker"
	"github.com/nikbrunner/gallery/internal/search"
	"github.com/nikbrunner/gallery/internal/storage"
	"github.com/nikbrunner/gallery/internal/tui"
)

// fetchCategory parses name and loads its items. Fetch errors print as
// the generic load message; the client logs the cause.
func (a *app) fetchCategory(ctx context.Context, name string) (model.Category, []model.Item, error) {
	category, err := model.ParseCategory(name)
	if err != nil {
		return 0, nil, err
	}
	items, err := a.client.Fetch(ctx, category)
	if err != nil {
		return 0, nil, err
	}
	return category, items, nil
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "list <category> [query...]",
		Short: "Print the items of a category, optionally filtered",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []model.Item
			var err error
			if snapshotPath != "" {
				items, err = readSnapshotItems(snapshotPath, args[0])
			} else {
				_, items, err = a.fetchCategory(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			items = search.Filter(items, strings.Join(args[1:], " "))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			for _, item := range items {
				fmt.Fprintf(out, "%s\t%s\t%s\n", item.ID, item.Title, item.ImageURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Read items from an exported JSON or SQLite snapshot instead of the source")
	return cmd
}

// readSnapshotItems returns the items of category name from a snapshot
// written by export. Files ending in .db are read as SQLite.
func readSnapshotItems(path, name string) ([]model.Item, error) {
	category, err := model.ParseCategory(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	if filepath.Ext(path) != ".db" {
		snapshot, err := storage.ReadJSONSnapshot(path)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		if snapshot.Category != category.String() {
			return nil, fmt.Errorf("snapshot %s holds %s items, not %s", path, snapshot.Category, category)
		}
		return snapshot.Items, nil
	}

	r, err := storage.NewSQLiteSnapshotWriter(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snapshot, err := r.Read(category.String())
	if err := errors.Join(err, r.Close()); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return snapshot.Items, nil
}

func newFindCmd(a *app) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "find <category> <query...>",
		Short: "Fuzzy find an item and copy its image URL",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, items, err := a.fetchCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			query := strings.Join(args[1:], " ")
			results := search.FuzzySearch(items, query)
			out := cmd.OutOrStdout()

			if len(results) == 0 {
				fmt.Fprintf(out, "No items found for '%s'\n", query)
				return nil
			}

			var selected *model.Item
			if len(results) == 1 {
				// Single result - select it directly
				selected = &results[0].Item
			} else {
				// Multiple results - show picker
				p := picker.New(results, category, query)
				finalModel, err := tea.NewProgram(p).Run()
				if err != nil {
					return fmt.Errorf("running picker: %w", err)
				}
				selected = finalModel.(picker.Picker).SelectedItem()
			}

			if selected == nil {
				return nil
			}

			fmt.Fprintf(out, "%s\n%s\n", selected.Title, selected.ImageURL)
			if err := clipboard.WriteAll(selected.ImageURL); err != nil {
				a.logger.Sugar().Warnw("copy to clipboard", "error", err)
			}
			if open {
				return tui.OpenURL(selected.ImageURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the image URL in the browser")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var concurrency int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <category>",
		Short: "Check the image links of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, items, err := a.fetchCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			opts := culler.Options{
				Concurrency: concurrency,
				Timeout:     a.config.Timeout(),
			}
			if !quiet {
				opts.OnProgress = func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %s: %d/%d", category.Label(), completed, total)
				}
			}

			results := culler.CheckImages(cmd.Context(), items, opts)
			if !quiet && len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Status == culler.Healthy {
					continue
				}
				detail := r.Error
				if r.StatusCode != 0 {
					detail = fmt.Sprintf("%d %s", r.StatusCode, detail)
				}
				fmt.Fprintf(out, "%-11s %s\t%s\t%s\n", r.Status, r.Item.Title, r.Item.ImageURL, strings.TrimSpace(detail))
			}

			counts := culler.Summary(results)
			fmt.Fprintf(out, "%d checked: %d ok, %d dead, %d unreachable, %d missing\n",
				len(results), counts[culler.Healthy], counts[culler.Dead], counts[culler.Unreachable], counts[culler.Missing])
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "Number of parallel requests")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide progress output")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <category> [path]",
		Short: "Export a category as an HTML page, JSON or SQLite snapshot",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, ok := map[string]string{"html": "html", "json": "json", "sqlite": "db"}[format]
			if !ok {
				return fmt.Errorf("unknown format %q (html, json, sqlite)", format)
			}

			category, items, err := a.fetchCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			outputPath := ""
			if len(args) == 2 {
				outputPath = args[1]
			}
			if outputPath == "" {
				outputPath, err = exporter.DefaultExportPath(category, ext)
				if err != nil {
					return fmt.Errorf("getting default export path: %w", err)
				}
			}

			snapshot := storage.Snapshot{
				Category:  category.String(),
				SourceURL: a.client.URL(category),
				FetchedAt: time.Now(),
				Items:     items,
			}

			if format == "html" {
				err = writeHTML(outputPath, category, items)
			} else {
				err = writeSnapshot(format, outputPath, snapshot)
			}
			if err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s items to %s\n", len(items), category, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Export format (html, json, sqlite)")
	return cmd
}

func writeHTML(path string, category model.Category, items []model.Item) error {
	page, err := exporter.ExportHTML(category, items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(page), 0644)
}

// openSnapshotWriter returns the writer for a snapshot format and the
// func releasing it.
func openSnapshotWriter(format, path string) (storage.SnapshotWriter, func() error, error) {
	if format == "sqlite" {
		w, err := storage.NewSQLiteSnapshotWriter(path)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	}
	return storage.NewJSONSnapshotWriter(path), func() error { return nil }, nil
}

func writeSnapshot(format, path string, snapshot storage.Snapshot) error {
	w, closeWriter, err := openSnapshotWriter(format, path)
	if err != nil {
		return err
	}
	return errors.Join(w.Write(snapshot), closeWriter())
}
