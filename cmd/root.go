package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/config"
	"github.com/pders01/snapvault/internal/repo"
)

var rootCmd = &cobra.Command{
	Use:   "snapvault",
	Short: "Local snapshot versioning for files and directories",
	Long: `snapvault tracks files and directories and takes full-copy snapshots:
  - commits: time-ordered, disposable snapshots with an append-only history
  - versions: named snapshots with descriptive metadata
  - latest: a single mutable pointer promoted from any commit with push

The working tree can be inspected against the latest pointer (status) and
any two versions can be diffed textually (compare).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// vaultFs is the filesystem every command operates on. Tests swap in a
// memory or temp-dir backed fs.
var vaultFs afero.Fs = afero.NewOsFs()

// openRepo opens the repository rooted at the current working directory.
func openRepo() (*repo.Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	return repo.Open(vaultFs, wd)
}

// loadConfig reads the repository's defaults document.
func loadConfig(r *repo.Repository) (*config.Config, error) {
	return config.Load(r.Fs, r.ConfigPath())
}
