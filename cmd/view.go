package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/strandtui/strand/internal/loader"
	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/paginate"
	"github.com/strandtui/strand/internal/store"
	"github.com/strandtui/strand/internal/telemetry"
	"github.com/strandtui/strand/internal/ui/styles"
	"github.com/strandtui/strand/internal/ui/threadview"
	"github.com/strandtui/strand/internal/watch"
)

var focusFlag string

var viewCmd = &cobra.Command{
	Use:   "view <thread-file|thread-db>",
	Short: "Open a thread in the interactive viewer",
	Long: `Open a thread fixture (.json, .yaml, .yml) or a thread cache database
(.db, .sqlite) in the interactive viewer. Fixture files are watched and the
view reloads when they change on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&focusFlag, "focus", "", "message id to focus first")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := styles.ApplyTheme(cfg.Theme); err != nil {
		return err
	}

	shutdown, err := telemetry.Init(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	var opts threadview.Options
	watched := false
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".db", ".sqlite":
		opts, err = dbOptions(path)
	case ".json", ".yaml", ".yml":
		opts, err = fixtureOptions(path)
		watched = err == nil
	default:
		return fmt.Errorf("unsupported thread source %q", ext)
	}
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		threadview.New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if watched {
		fw, werr := watch.NewFileWatcher(path, cfg.Debounce, func() {
			reloadFixture(p, path)
		})
		if werr != nil {
			return werr
		}
		defer func() { _ = fw.Close() }()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// fixtureOptions builds viewer options for a fixture file: the store starts
// with the seed window around the focus and the pager serves the rest.
func fixtureOptions(path string) (threadview.Options, error) {
	fx, err := loader.Load(path)
	if err != nil {
		return threadview.Options{}, err
	}

	focus := fx.Focus
	if focusFlag != "" {
		focus = focusFlag
	}

	seed, _ := paginate.SeedWindow(fx.Messages, focus, cfg.PageSize)
	st := store.NewMemoryStore()
	st.Seed(seed)

	return threadview.Options{
		Store:    st,
		Pager:    paginate.NewStorePager(fx.Messages, cfg.PageSize),
		FocusID:  focus,
		Debounce: cfg.Debounce,
	}, nil
}

// dbOptions builds viewer options for a thread cache database. The cache
// already holds everything it ever fetched, so the pager only fills gaps
// advertised by reply counts.
func dbOptions(path string) (threadview.Options, error) {
	st, err := store.OpenSQLite(path)
	if err != nil {
		return threadview.Options{}, err
	}

	msgs := st.Messages()
	focus := focusFlag
	if focus == "" {
		for _, msg := range msgs {
			if msg.InReplyTo == "" {
				focus = msg.ID
				break
			}
		}
	}
	if focus == "" {
		return threadview.Options{}, fmt.Errorf("empty thread cache %s: use --focus", path)
	}

	return threadview.Options{
		Store:    st,
		Pager:    paginate.NewStorePager(msgs, cfg.PageSize),
		FocusID:  focus,
		Debounce: cfg.Debounce,
	}, nil
}

func reloadFixture(p *tea.Program, path string) {
	fx, err := loader.Load(path)
	if err != nil {
		log.ErrorErr(log.CatLoader, "reload failed", err, "path", path)
		return
	}

	seed, _ := paginate.SeedWindow(fx.Messages, fx.Focus, cfg.PageSize)
	st := store.NewMemoryStore()
	st.Seed(seed)

	p.Send(threadview.ReloadMsg{
		Store:   st,
		Pager:   paginate.NewStorePager(fx.Messages, cfg.PageSize),
		FocusID: fx.Focus,
	})
}
