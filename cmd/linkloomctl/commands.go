package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"linkloom/internal/model"
	"linkloom/internal/platform"
	"linkloom/internal/resolver"
	"linkloom/internal/storage"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <url>",
		Short: "Show the platform of a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := platform.ClassifyOr(args[0], model.OtherPlatform)
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <text>...",
		Short: "Split pasted share text into link and title",
		Long: `Split text copied from a share sheet into the link, a title candidate and
the platform. Multiple arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			share := platform.ParseShare(strings.Join(args, " "))
			return writeJSON(cmd.OutOrStdout(), struct {
				platform.Share
				Platform string `json:"platform"`
			}{share, platform.ClassifyOr(share.URL, model.OtherPlatform)})
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Fetch a link preview",
		Long: `Fetch the title, description and thumbnail of a link through the
configured resolver chain. Results are cached in the database unless
--no-cache is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cache resolver.Cache
			ttl := a.cfg.ResolverCacheTTL
			if !noCache && ttl > 0 {
				db, err := a.database()
				if err != nil {
					return err
				}
				cache = storage.NewMetadataCacheRepo(db)
			}

			res := resolver.New(resolver.Options{
				Timeout:          a.cfg.ResolverTimeout,
				OEmbedURL:        a.cfg.OEmbedURL,
				MicrolinkURL:     a.cfg.MicrolinkURL,
				ProxyURLs:        a.cfg.ProxyURLs,
				RenderControlURL: a.cfg.RenderControlURL,
				CacheTTL:         ttl,
			}, cache, a.logger)
			defer func() {
				_ = res.Close()
			}()

			md := res.Resolve(cmd.Context(), args[0])
			if md.Empty() {
				return fmt.Errorf("no preview found for %s", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), md)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the metadata cache")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the collection as JSON",
		Long:  `Write items, platform tabs and folders as one JSON document to file, or to stdout.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snap := store.Snapshot()

			if len(args) == 0 || args[0] == "-" {
				return writeJSON(cmd.OutOrStdout(), snap)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := writeJSON(f, snap); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d items to %s\n", len(snap.Items), args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collection from a JSON export",
		Long: `Replace items, platform tabs and folders with the contents of a JSON
export. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer in.Close()

			var snap model.Snapshot
			if err := json.NewDecoder(in).Decode(&snap); err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}
			for i, item := range snap.Items {
				if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.URL) == "" {
					return fmt.Errorf("item %d: id and url are required", i)
				}
			}

			store, err := a.openStore(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store.Restore(cmd.Context(), snap)
			if err := store.LastError(); err != nil {
				return fmt.Errorf("failed to save imported collection: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items, %d platforms, %d folders\n",
				len(snap.Items), len(store.Platforms()), len(store.Folders()))
			return nil
		},
	}
}

func newFoldersCmd(a *app) *cobra.Command {
	folders := &cobra.Command{
		Use:   "folders",
		Short: "List and manage folders",
	}

	folders.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List folders with their item counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := a.openStore(cmd.Context(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				counts := make(map[string]int)
				for _, item := range store.Items() {
					counts[item.Folder]++
				}
				for _, name := range store.Folders() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, counts[name])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a folder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore(cmd.Context(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !store.AddFolder(cmd.Context(), args[0]) {
					return fmt.Errorf("folder %q is blank or already exists", args[0])
				}
				return store.LastError()
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a folder and move its items",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore(cmd.Context(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !store.RenameFolder(cmd.Context(), args[0], args[1]) {
					return fmt.Errorf("cannot rename %q to %q", args[0], args[1])
				}
				return store.LastError()
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a folder, moving its items to the fallback folder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore(cmd.Context(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				fallback, ok := store.DeleteFolder(cmd.Context(), args[0])
				if !ok {
					return fmt.Errorf("cannot delete folder %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Items moved to %s\n", fallback)
				return store.LastError()
			},
		},
	)
	return folders
}

func newDocumentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "documents",
		Short: "List the stored collection documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.database()
			if err != nil {
				return err
			}
			docs, err := storage.NewDocumentRepo(db).ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No documents stored yet")
				return nil
			}
			for _, doc := range docs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", doc.Key, len(doc.Body), doc.UpdatedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
