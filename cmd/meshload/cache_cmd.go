package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshview/loader/internal/config"
	"github.com/meshview/loader/store"
)

func newCacheCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cached model blob",
	}
	cmd.AddCommand(newCacheInspectCmd(cfg))
	cmd.AddCommand(newCacheClearCmd(cfg))
	return cmd
}

func newCacheInspectCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Report whether a model blob is cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cfg)
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("caching is disabled (store = none)")
			}
			defer st.Close()

			blob, ok, err := st.Get(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "cache empty")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached blob: %d bytes\n", len(blob))
			return nil
		},
	}
}

func newCacheClearCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached model blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cfg)
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("caching is disabled (store = none)")
			}
			defer st.Close()

			clearer, ok := st.(store.Clearer)
			if !ok {
				return fmt.Errorf("store %q does not support clearing", cfg.Store)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
