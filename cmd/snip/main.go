package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pbaille/snipstack/internal/api"
	"github.com/pbaille/snipstack/internal/capture"
	"github.com/pbaille/snipstack/internal/config"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/filter"
	"github.com/pbaille/snipstack/internal/library"
	"github.com/pbaille/snipstack/internal/logging"
	"github.com/pbaille/snipstack/internal/search"
)

var (
	configPath string
	dbPath     string
	logLevel   string
)

func main() {
	// Default config location
	home, _ := os.UserHomeDir()
	defaultConfig := filepath.Join(home, ".snip", "config.json5")

	rootCmd := &cobra.Command{
		Use:          "snip",
		Short:        "Clipboard snippets with automatic classification",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "config file (JSON5)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(noteCmd())
	rootCmd.AddCommand(favCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(copyCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func addCmd() *cobra.Command {
	var appName string

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Capture a snippet",
		Long:  "Capture a snippet from the arguments, or from stdin when the only argument is -.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			return withApp(cmd.Context(), func(a *app) error {
				ev := capture.Event{Text: text}
				if appName != "" {
					ev.App = &domain.SourceApp{Name: appName}
				}

				res, err := a.capture.Capture(cmd.Context(), ev)
				if err := warnPersistence(err); err != nil {
					return err
				}
				if !res.Captured {
					fmt.Printf("Not captured (%s)\n", res.Skipped)
					return nil
				}

				s := res.Snippet
				fmt.Printf("Added snippet: %s\n", shortID(s.ID))
				fmt.Printf("Type:    %s\n", s.Type())
				fmt.Printf("Tags:    %s\n", strings.Join(s.Tags, ", "))
				fmt.Printf("Content: %s\n", truncate(s.Content, 80))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&appName, "app", "", "source application name")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		limit     int
		favorites bool
		oldest    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				items := filter.Apply(a.lib.All(), domain.FilterSpec{}, viewOf(favorites), sortOf(oldest))
				if len(items) == 0 {
					fmt.Println("No snippets yet. Use 'snip add' or 'snip watch' to capture some.")
					return nil
				}
				printSnippets(items, limit)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of snippets to show")
	cmd.Flags().BoolVar(&favorites, "fav", false, "favorites only")
	cmd.Flags().BoolVar(&oldest, "oldest", false, "oldest first")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show snippet details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				s, err := a.lib.Get(args[0])
				if err != nil {
					return err
				}

				fmt.Printf("ID:       %s\n", s.ID)
				fmt.Printf("Type:     %s\n", s.Type())
				if detail := kindDetail(s.Kind); detail != "" {
					fmt.Printf("Detail:   %s\n", detail)
				}
				fmt.Printf("Source:   %s\n", s.Source)
				fmt.Printf("Captured: %s (%s)\n", s.DisplayTime(), humanize.Time(s.Timestamp))
				fmt.Printf("Tags:     %s\n", strings.Join(s.Tags, ", "))
				if s.IsFavorite {
					fmt.Println("Favorite: yes")
				}
				fmt.Printf("Content:\n%s\n", s.Content)

				if len(s.Notes) > 0 {
					fmt.Printf("\nNotes:\n")
					for i, n := range s.Notes {
						fmt.Printf("  [%d] %s\n", i, n)
					}
				}
				return nil
			})
		},
	}
}

func searchCmd() *cobra.Command {
	var (
		favorites bool
		oldest    bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search snippets",
		Long: `Search snippets with free text or a command:
  /date <phrase>   e.g. /date last night, /date march 9
  /type <type>     code, link, text, color, quote, tweet, message or a language
  /app <name>      source application
  /fav [text]      favorites
  /newest, /oldest sort order`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				spec := a.compiler.Compile(cmd.Context(), strings.Join(args, " "), domain.FilterSpec{})
				logging.Debug("compiled query", "spec", spec)

				items := a.engine.Apply(a.lib.All(), spec, viewOf(favorites), sortOf(oldest))
				if len(items) == 0 {
					fmt.Println("No matching snippets found.")
					return nil
				}
				printSnippets(items, 0)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&favorites, "fav", false, "favorites only")
	cmd.Flags().BoolVar(&oldest, "oldest", false, "oldest first")
	return cmd
}

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage snippet notes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [id] [note]",
		Short: "Append a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				s, err := a.lib.AddNote(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err := warnPersistence(err); err != nil {
					return err
				}
				fmt.Printf("%s now has %d note(s)\n", shortID(s.ID), len(s.Notes))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [id] [index]",
		Short: "Remove a note by index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("note index must be a number: %q", args[1])
			}
			return withApp(cmd.Context(), func(a *app) error {
				s, err := a.lib.RemoveNote(cmd.Context(), args[0], index)
				if err := warnPersistence(err); err != nil {
					return err
				}
				fmt.Printf("%s now has %d note(s)\n", shortID(s.ID), len(s.Notes))
				return nil
			})
		},
	})

	return cmd
}

func favCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav [id]",
		Short: "Toggle favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				s, err := a.lib.ToggleFavorite(cmd.Context(), args[0])
				if err := warnPersistence(err); err != nil {
					return err
				}
				if s.IsFavorite {
					fmt.Printf("%s added to favorites\n", shortID(s.ID))
				} else {
					fmt.Printf("%s removed from favorites\n", shortID(s.ID))
				}
				return nil
			})
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				if err := warnPersistence(a.lib.Delete(cmd.Context(), args[0])); err != nil {
					return err
				}
				fmt.Println("Deleted.")
				return nil
			})
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every snippet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all snippets without --yes")
			}
			return withApp(cmd.Context(), func(a *app) error {
				n := a.lib.Len()
				if err := warnPersistence(a.lib.DeleteAll(cmd.Context())); err != nil {
					return err
				}
				fmt.Printf("Deleted %d snippet(s).\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [id]",
		Short: "Copy a snippet to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				s, err := a.lib.Get(args[0])
				if err != nil {
					return err
				}
				if err := a.capture.Copy(s); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Printf("Copied %s\n", shortID(s.ID))
				return nil
			})
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replace the collection with demo snippets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				items := library.DemoSnippets(time.Now())
				if err := warnPersistence(a.lib.Replace(cmd.Context(), items)); err != nil {
					return err
				}
				fmt.Printf("Loaded %d demo snippets.\n", len(items))
				return nil
			})
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Capture clipboard changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := logging.InitFile(cfg.Data.LogDir, cfg.LogLevel); err != nil {
				return err
			}

			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := os.Stat(configPath); err == nil {
				cw, err := config.NewWatcher(configPath)
				if err != nil {
					return fmt.Errorf("watch config: %w", err)
				}
				cw.OnChange(func(next *config.Config) {
					level := next.LogLevel
					if logLevel != "" {
						level = logLevel
					}
					if err := logging.SetLevel(level); err != nil {
						logging.Warn("ignoring log level", "err", err)
					}
					a.dates.SetSmart(next.Search.SmartDates)
				})
				if err := cw.Start(); err != nil {
					return fmt.Errorf("watch config: %w", err)
				}
				defer cw.Stop()
			}

			events := make(chan capture.Event)
			w := capture.NewWatcher(config.Ms(cfg.Capture.PollMs), nil)
			go w.Run(ctx, events)

			fmt.Println("Watching the clipboard. Press Ctrl-C to stop.")
			a.capture.Run(ctx, events, func(res capture.Result, err error) {
				if !res.Captured {
					logging.Debug("capture skipped", "reason", res.Skipped)
					return
				}
				s := res.Snippet
				fmt.Printf("+ %s  %-7s  %s\n", shortID(s.ID), s.Type(), truncate(s.Content, 60))
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
			})
			return nil
		},
	}
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search interactively, one query per line",
		Long: `Search interactively. Each line is compiled against the previous one,
so repeating a command refines it. Special lines:
  :fav, :all        switch view
  :newest, :oldest  switch sort
  :q                quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				sess := search.NewSession(a.compiler, a.engine, a.lib.All, search.Options{
					Debounce: config.Ms(a.cfg.Search.DebounceMs),
				})
				defer sess.Close()

				printResults(sess.Refresh())
				in := bufio.NewScanner(cmd.InOrStdin())
				for {
					fmt.Print("> ")
					if !in.Scan() {
						fmt.Println()
						return in.Err()
					}

					line := strings.TrimSpace(in.Text())
					switch line {
					case ":q":
						return nil
					case ":fav":
						printResults(sess.SetView(domain.ViewFavorites))
					case ":all":
						printResults(sess.SetView(domain.ViewAll))
					case ":newest":
						printResults(sess.SetSort(domain.SortNewest))
					case ":oldest":
						printResults(sess.SetSort(domain.SortOldest))
					default:
						printResults(sess.Submit(cmd.Context(), line))
					}
				}
			})
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				server := api.New(api.Deps{
					Library:  a.lib,
					Capture:  a.capture,
					Compiler: a.compiler,
					Engine:   a.engine,
				}, addr)
				return server.Run(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

func printResults(r search.Results) {
	if r.Spec.Command != domain.CommandNone || r.Spec.FreeText != "" {
		fmt.Printf("%d match(es) for %q\n", len(r.Snippets), r.Input)
	}
	printSnippets(r.Snippets, 20)
}

func printSnippets(items []domain.Snippet, limit int) {
	for i, s := range items {
		if limit > 0 && i == limit {
			fmt.Printf("... %d more\n", len(items)-limit)
			return
		}
		star := " "
		if s.IsFavorite {
			star = "*"
		}
		fmt.Printf("%s %s  %-7s  %-14s  %s\n", star, shortID(s.ID), s.Type(),
			humanize.Time(s.Timestamp), truncate(s.Content, 60))
	}
}

func kindDetail(k domain.Kind) string {
	switch k := k.(type) {
	case domain.Code:
		return k.Path
	case domain.Tweet:
		return k.Handle
	case domain.Quote:
		return k.Author
	case domain.Link:
		return k.Title
	case domain.Message:
		return k.Contact
	case domain.Color:
		return k.Value
	}
	return ""
}

func viewOf(favorites bool) domain.View {
	if favorites {
		return domain.ViewFavorites
	}
	return domain.ViewAll
}

func sortOf(oldest bool) domain.SortOrder {
	if oldest {
		return domain.SortOldest
	}
	return domain.SortNewest
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
