// Package cli implements the scrutin command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/scrutin/internal/ledger"
	"github.com/roach88/scrutin/internal/votes"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scrutin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "scrutin",
		Short: "scrutin - ledger-backed vote record store",
		Long:  "Record one vote per voter in an ordered key-value ledger and query it: reads, full dumps, tallies, fingerprints.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "scrutin.db", "path to the SQLite world state")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExistsCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTallyCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))
	cmd.AddCommand(NewFingerprintCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore opens the SQLite world state at opts.DBPath and wraps it in a
// record store. The returned close function must be called when done.
func openStore(opts *RootOptions) (*votes.Store, func() error, error) {
	ws, err := ledger.OpenSQLite(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("open world state at %s", opts.DBPath), err)
	}
	return votes.NewStore(ws, slog.Default()), ws.Close, nil
}
