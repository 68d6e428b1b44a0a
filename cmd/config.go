package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change repository defaults",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current defaults",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one default",
	Long: `Change one of the repository defaults. Valid keys:

  default_author
  default_version_description
  default_commit_message`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(r)
	if err != nil {
		return err
	}

	values := cfg.All()
	for _, k := range config.Keys() {
		fmt.Printf("%s: %s\n", k, values[k])
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(r)
	if err != nil {
		return err
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("%s updated successfully.\n", args[0])
	return nil
}
