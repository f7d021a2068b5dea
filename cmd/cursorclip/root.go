package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	debug   bool
	dataDir string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:   "cursorclip",
		Short: "Keep the cursor inside a fullscreen game window",
		Long: "cursorclip confines the mouse cursor to a target window while it is focused and " +
			"fullscreen, releasing it on focus loss, window drags, the Ctrl+Shift+C toggle, or exit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (default $DATA_DIR or ./data)")

	root.AddCommand(newKeysCmd(), newMonitorsCmd())
	return root
}
