package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"linkloom/internal/catalog"
	"linkloom/internal/config"
	"linkloom/internal/storage"
)

// app carries flags and lazily opened resources shared by subcommands.
type app struct {
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "linkloomctl",
		Short: "Inspect and maintain a LinkLoom collection",
		Long: `linkloomctl works on the same SQLite database as the LinkLoom API server.

Available commands:
  classify - Show the platform of a link
  share    - Split pasted share text into link and title
  resolve  - Fetch a link preview
  export   - Write the collection as JSON
  import   - Replace the collection from a JSON export
  folders  - List and manage folders
  documents - List the stored collection documents`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default from DB_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newClassifyCmd(),
		newShareCmd(),
		newResolveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newFoldersCmd(a),
		newDocumentsCmd(a),
	)
	return root
}

func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := storage.New(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.db = db
	return db, nil
}

// openStore opens the catalog. Confirmations are written to out.
func (a *app) openStore(ctx context.Context, out io.Writer) (*catalog.Store, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}

	seed := catalog.Seed{}
	if a.cfg.SeedPath != "" {
		seed, err = catalog.LoadSeed(a.cfg.SeedPath)
	} else {
		seed, err = catalog.DefaultSeed()
	}
	if err != nil {
		return nil, err
	}

	return catalog.Open(ctx, storage.NewDocumentRepo(db),
		catalog.WithNotifier(printNotifier{out: out}),
		catalog.WithLogger(a.logger),
		catalog.WithPrimary(a.cfg.PrimaryDimension),
		catalog.WithProtectedFallback(a.cfg.ProtectFallbackFolder),
		catalog.WithSeed(seed),
	)
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// printNotifier prints toasts as plain lines.
type printNotifier struct {
	out io.Writer
}

func (p printNotifier) Notify(_ context.Context, message string) {
	fmt.Fprintln(p.out, message)
}

// openInput opens path for reading, or stdin when path is "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
