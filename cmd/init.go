package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/config"
	"github.com/pders01/snapvault/internal/repo"
)

var (
	initAuthor      string
	initDescription string
	initMessage     string
)

var initCmd = &cobra.Command{
	Use:   "init <repo-name>",
	Short: "Initialize a new snapvault repository",
	Long: `Create the repository storage under .snapvault in the current directory:
an empty index, the commit and version trees, the latest pointer, an empty
history journal, and a config document with the default author, version
description, and commit message.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initAuthor, "author", "", "Default author for commits and versions")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Default version description")
	initCmd.Flags().StringVar(&initMessage, "message", "", "Default commit message")
}

func runInit(cmd *cobra.Command, args []string) error {
	repoName := args[0]

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	r, err := repo.Init(vaultFs, wd, repoName)
	if err != nil {
		return err
	}

	cfg, err := config.Load(r.Fs, r.ConfigPath())
	if err != nil {
		return err
	}
	if initAuthor != "" {
		if err := cfg.Set(config.KeyAuthor, initAuthor); err != nil {
			return err
		}
	}
	if initDescription != "" {
		if err := cfg.Set(config.KeyVersionDescription, initDescription); err != nil {
			return err
		}
	}
	if initMessage != "" {
		if err := cfg.Set(config.KeyCommitMessage, initMessage); err != nil {
			return err
		}
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Repository '%s' initialized successfully.\n", repoName)
	return nil
}
