package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandtui/strand/internal/loader"
	"github.com/strandtui/strand/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <thread-file> <thread-db>",
	Short: "Import a thread fixture into a thread cache database",
	Long: `Import a fixture file (.json, .yaml, .yml) into a sqlite thread cache.
The cache can then be opened with "strand view" and survives restarts.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	fx, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	st, err := store.OpenSQLite(args[1])
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Import(fx.Messages); err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	fmt.Printf("imported %d messages into %s\n", len(fx.Messages), args[1])
	return nil
}
