package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/culler"
	"github.com/nikbrunner/readme/internal/exporter"
	"github.com/nikbrunner/readme/internal/importer"
	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/picker"
	"github.com/nikbrunner/readme/internal/printer"
	"github.com/nikbrunner/readme/internal/search"
	"github.com/nikbrunner/readme/internal/tui"
)

var configDir string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readme [query]",
		Short: "Reading list and feed reader for the terminal.",
		Long: "Without arguments readme opens the interactive interface.\n" +
			"With a query it fuzzy searches the reading list and opens the chosen link.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runSearch(strings.Join(args, " "))
			}
			return runTUI()
		},
	}
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.json (default ~/.config/readme)")

	addCommands(cmd)
	return cmd
}

func addCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addSearch(topLevel)
	addCull(topLevel)
}

func runTUI() error {
	s, err := openSession(configDir)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.AppParams{Engine: s.logic, Reader: s.reader})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

func addRun(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "run one command line without the interface",
		Example: `
readme run add t/Go Blog l/https://go.dev/blog tag/go
readme run find go
readme run feeds
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(configDir)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.logic.Execute(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printer.Feedback(out, result.Feedback)
			if result.ShowHelp {
				fmt.Fprintln(out, command.HelpText)
				return nil
			}
			if result.Exit {
				return nil
			}
			printer.Entries(out, s.logic.Context().String(), s.logic.FilteredEntries())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "import browser bookmarks into the reading list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			entries, err := importer.ParseHTMLBookmarks(f)
			if err != nil {
				return fmt.Errorf("parse bookmarks: %w", err)
			}

			s, err := openSession(configDir)
			if err != nil {
				return err
			}
			defer s.Close()

			added, skipped, err := s.logic.Import(entries)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Imported %d entries", added)
			if skipped > 0 {
				msg += fmt.Sprintf(" (%d duplicates skipped)", skipped)
			}
			printer.Feedback(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// exportBooks maps --book values to contexts.
var exportBooks = map[string]model.Context{
	"list":     model.ContextList,
	"archives": model.ContextArchives,
	"feeds":    model.ContextFeeds,
}

func addExport(topLevel *cobra.Command) {
	var book, format string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "export a book as browser bookmarks or YAML",
		Example: `
readme export
readme export --book archives ~/archives.html
readme export --format yaml list.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := exportBooks[book]
			if !ok {
				return fmt.Errorf("unknown book %q, expected list, archives or feeds", book)
			}
			if format != "html" && format != "yaml" {
				return fmt.Errorf("unknown format %q, expected html or yaml", format)
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = exporter.DefaultExportPath(book, format); err != nil {
					return err
				}
			}

			s, err := openSession(configDir)
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.logic.Model().Book(c).Entries()
			if err := writeExport(path, format, c.String(), entries); err != nil {
				return err
			}
			printer.Feedback(cmd.OutOrStdout(), fmt.Sprintf("Exported %d entries to %s", len(entries), path))
			return nil
		},
	}
	cmd.Flags().StringVar(&book, "book", "list", "book to export: list, archives or feeds")
	cmd.Flags().StringVar(&format, "format", "html", "output format: html or yaml")

	topLevel.AddCommand(cmd)
}

func writeExport(path, format, title string, entries []model.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if format == "yaml" {
		err = exporter.ExportYAML(f, title, entries)
	} else {
		_, err = f.WriteString(exporter.ExportHTML(title, entries))
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func addSearch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "fuzzy search the reading list and open the chosen link",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "))
		},
	}

	topLevel.AddCommand(cmd)
}

func runSearch(query string) error {
	s, err := openSession(configDir)
	if err != nil {
		return err
	}
	defer s.Close()

	results := search.Fuzzy(s.logic.Model().Book(model.ContextList).Entries(), query)
	if len(results) == 0 {
		printer.Feedback(os.Stdout, fmt.Sprintf("No entries found for '%s'", query))
		return nil
	}

	selected := results[0].Entry
	if len(results) > 1 {
		final, err := tea.NewProgram(picker.New(results, query)).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		e, ok := final.(picker.Picker).Selected()
		if !ok {
			return nil
		}
		selected = e
	}

	printer.Feedback(os.Stdout, "Opening: "+selected.Title)
	return tui.OpenInBrowser(selected.Link)
}

func addCull(topLevel *cobra.Command) {
	var remove bool

	cmd := &cobra.Command{
		Use:   "cull",
		Short: "check reading list links and report dead ones",
		Example: `
readme cull
readme cull --remove
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(configDir)
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.logic.Model().Book(model.ContextList).Entries()
			errOut := cmd.ErrOrStderr()
			results := culler.Check(cmd.Context(), entries, culler.Options{
				Concurrency:    s.cfg.CheckConcurrency,
				Timeout:        s.cfg.CheckTimeout,
				ExcludeDomains: s.cfg.CheckExcludeDomains,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking links... %d/%d", completed, total)
				},
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			out := cmd.OutOrStdout()
			printer.CullReport(out, results)

			dead := culler.DeadEntries(results)
			if !remove || len(dead) == 0 {
				return nil
			}
			removed, err := s.logic.Remove(model.ContextList, dead)
			if err != nil {
				return err
			}
			printer.Feedback(out, fmt.Sprintf("Removed %d dead entries", removed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "delete dead entries from the reading list")

	topLevel.AddCommand(cmd)
}
