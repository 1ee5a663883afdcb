package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshview/loader/internal/config"
	"github.com/meshview/loader/store"
	"github.com/meshview/loader/store/disk"
	"github.com/meshview/loader/store/sqlite"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "meshload",
		Short:         "Load a 3D model with a persistent client-side cache",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.URL, "url", cfg.URL, "remote model URL")
	root.PersistentFlags().StringVar(&cfg.Store, "store", cfg.Store, "cache backend: sqlite, disk, or none")
	root.PersistentFlags().StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "cache database file or directory")
	root.PersistentFlags().BoolVar(&cfg.Compress, "compress", cfg.Compress, "zstd-compress the disk store")

	root.AddCommand(newLoadCmd(&cfg))
	root.AddCommand(newCacheCmd(&cfg))
	return root
}

// openConfiguredStore opens the store selected by cfg, or returns nil for
// the uncached configuration.
func openConfiguredStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store == config.StoreNone {
		return nil, nil
	}
	path, err := cfg.ResolveCachePath()
	if err != nil {
		return nil, err
	}
	switch cfg.Store {
	case config.StoreSQLite:
		return sqlite.Open(path)
	case config.StoreDisk:
		return disk.Open(path, disk.WithCompression(cfg.Compress))
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store)
	}
}

// storeOpener defers opening to the load sequence so an unavailable store
// degrades to the fallback fetch instead of aborting the command.
func storeOpener(cfg *config.Config) store.Opener {
	if cfg.Store == config.StoreNone {
		return nil
	}
	return func(context.Context) (store.Store, error) {
		return openConfiguredStore(cfg)
	}
}
