package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TykTechnologies/preferences/logging"
)

// NewRootCmd builds the prefctl command tree.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "prefctl",
		Short: "Read and write preferences",
		Long: `prefctl reads and writes the preferences store.

The backend is selected with PREFS_BACKEND (bolt, redis, mongo, ipfs) and
scoped with PREFS_DOMAIN. Without PREFS_BACKEND the bolt file at
PREFS_BOLT_PATH is used. See the config package for every variable.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newListCmd())

	return rootCmd
}
