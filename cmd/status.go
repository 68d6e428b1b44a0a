package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/status"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree's relationship to the latest pointer",
	Long: `Classify every file as untracked, modified, deleted, or staged:

  untracked - in the working tree but not in the index
  modified  - tracked, present, and differing from the latest pointer's copy
  deleted   - tracked but gone from the working tree
  staged    - tracked, present, and identical to the latest pointer's copy

A tracked file the latest pointer has never held counts as modified.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	report, err := status.Collect(r)
	if err != nil {
		return err
	}

	if statusJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Repository: %s\n", report.RepoName)
	fmt.Printf("Tracked Files: %d\n", report.TrackedCount)
	fmt.Printf("Total Versions: %d\n", report.VersionCount)
	if report.LastCommit == nil {
		fmt.Println("Last Commit: No commits yet.")
	} else {
		fmt.Printf("Last Commit: %s by %s, %s (%s)\n",
			report.LastCommit.CommitID,
			report.LastCommit.Author,
			report.LastCommit.Message,
			humanize.Time(report.LastCommit.Timestamp),
		)
	}

	printSection := func(title string, files []string, emptyMsg string) {
		fmt.Printf("\n%s:\n", title)
		if len(files) == 0 {
			fmt.Println(emptyMsg)
			return
		}
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
	}

	printSection("Untracked Files", report.Untracked, "No untracked files.")
	printSection("Modified Files", report.Modified, "No modified files.")
	printSection("Deleted Files", report.Deleted, "No deleted files.")
	printSection("Staged Files", report.Staged, "No staged files.")
	return nil
}
