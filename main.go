package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var flagDBPath string

func main() {
	cfg := loadConfig()
	log := newLogger(cfg)

	rootCmd := &cobra.Command{
		Use:   "horizon",
		Short: "Offline engagement mapping canvas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cfg, log)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the horizon database")

	rootCmd.AddCommand(
		reportCmd(cfg, log),
		exportCmd(cfg, log),
		importCmd(cfg, log),
		pngCmd(cfg, log),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes leveled JSON logs to a file; stdout is the TUI's.
func newLogger(cfg *Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(parseLevel(cfg.LogLevel))

	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Str("service", "horizon").Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func dbPath(cfg *Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.DBPath()
}

func runTUI(cfg *Config, log zerolog.Logger) error {
	store, err := OpenStore(dbPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	app := NewApp(log)
	if p, loaded := store.Load(log); loaded {
		app.LoadPayload(p)
		log.Info().Int("nodes", len(app.Document().Nodes)).Msg("loaded saved map")
	}

	saver := NewSaver(store, log)
	p := tea.NewProgram(
		initialModel(app, saver, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// loadDocument opens the store read-only for the headless subcommands.
func loadDocument(cfg *Config, log zerolog.Logger) (*Document, error) {
	store, err := OpenStore(dbPath(cfg))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	app := NewApp(log)
	if p, loaded := store.Load(log); loaded {
		app.LoadPayload(p)
	}
	return app.Document(), nil
}

func reportCmd(cfg *Config, log zerolog.Logger) *cobra.Command {
	var out, title, author string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the saved map as a Markdown engagement report",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cfg, log)
			if err != nil {
				return err
			}
			report := BuildReport(doc, title, author, time.Now().Format("2006-01-02"))
			if err := os.WriteFile(out, []byte(report), 0644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "horizon-report.md", "output file")
	cmd.Flags().StringVar(&title, "title", "Penetration Test Report", "report title")
	cmd.Flags().StringVar(&author, "author", "", "report author")
	return cmd
}

func exportCmd(cfg *Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the saved map as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cfg, log)
			if err != nil {
				return err
			}
			if err := ExportToFile(doc, args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", args[0])
			return nil
		},
	}
}

func importCmd(cfg *Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved map with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ImportFromFile(args[0])
			if err != nil {
				return err
			}
			store, err := OpenStore(dbPath(cfg))
			if err != nil {
				return err
			}
			defer store.Close()

			app := NewApp(log)
			app.ReplaceDocument(doc)
			if err := store.Save(app.Payload()); err != nil {
				return err
			}
			fmt.Printf("Imported %d nodes\n", len(doc.Nodes))
			return nil
		},
	}
}

func pngCmd(cfg *Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "png <file>",
		Short: "Render the saved map to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cfg, log)
			if err != nil {
				return err
			}
			if err := ExportToPNG(doc, args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", args[0])
			return nil
		},
	}
}
