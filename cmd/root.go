// Package cmd defines the strand command line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/strandtui/strand/internal/config"
	"github.com/strandtui/strand/internal/log"
)

var (
	cfgFile   string
	debugFlag bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "strand",
	Short: "Terminal reply-thread viewer",
	Long: `Strand reconstructs a reply thread from flat parent/child relations and
renders it as a navigable column: ancestors above the focused message,
the flattened reply tree below.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if debugFlag {
			cfg.Debug = true
		}

		if cfg.Debug {
			cleanup, err := log.Init("strand-debug.log", 1000)
			if err != nil {
				return err
			}
			cobra.OnFinalize(cleanup)
		} else {
			log.SetEnabled(false)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: strand.yaml in . or ~/.config/strand)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to strand-debug.log")
}
