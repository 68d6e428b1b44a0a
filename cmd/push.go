package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/commit"
	"github.com/pders01/snapvault/internal/models"
)

var pushCmd = &cobra.Command{
	Use:   "push [commit-id]",
	Short: "Promote a commit to the latest pointer",
	Long: `Replace the latest pointer's contents wholesale with a copy of one
commit. With no argument the most recent commit is promoted. The old
latest contents are discarded, never merged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	mgr := &commit.Manager{Repo: r}
	pushed, err := mgr.Push(id)
	if err != nil {
		return err
	}

	fmt.Printf("Commit '%s' pushed to '%s'.\n", pushed, models.LatestName)
	return nil
}
