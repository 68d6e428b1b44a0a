package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/commit"
	"github.com/pders01/snapvault/internal/models"
)

var (
	commitMessage     string
	commitAuthor      string
	commitListJSON    bool
	commitHistoryJSON bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Create a new commit snapshot",
	Long: `Take a full snapshot of every tracked file and directory under a fresh
time-ordered identifier and append its metadata to the history journal.

The journal is append-only: removing or clearing commit storage later
never rewrites it.`,
	RunE: runCommit,
}

var commitRemoveCmd = &cobra.Command{
	Use:   "remove <commit-id>",
	Short: "Delete one commit's snapshot storage",
	Long: `Delete the snapshot tree of one commit. Its history journal entry is
kept, so 'commit history' still lists it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCommitRemove,
}

var commitClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all commit storage except the latest pointer",
	RunE:  runCommitClear,
}

var commitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List commits that still have storage",
	RunE:  runCommitList,
}

var commitHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Replay the full commit history journal",
	RunE:  runCommitHistory,
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.AddCommand(commitRemoveCmd)
	commitCmd.AddCommand(commitClearCmd)
	commitCmd.AddCommand(commitListCmd)
	commitCmd.AddCommand(commitHistoryCmd)

	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message (default from config)")
	commitCmd.Flags().StringVar(&commitAuthor, "author", "", "Commit author (default from config)")
	commitListCmd.Flags().BoolVar(&commitListJSON, "json", false, "Output as JSON")
	commitHistoryCmd.Flags().BoolVar(&commitHistoryJSON, "json", false, "Output as JSON")
}

func runCommit(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(r)
	if err != nil {
		return err
	}

	message := commitMessage
	if message == "" {
		message = cfg.DefaultCommitMessage()
	}
	author := commitAuthor
	if author == "" {
		author = cfg.DefaultAuthor()
	}

	mgr := &commit.Manager{Repo: r}
	rec, res, err := mgr.Commit(message, author)
	if err != nil {
		return err
	}

	for _, p := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: tracked path '%s' does not exist, skipped.\n", p)
	}
	fmt.Printf("Commit '%s' created successfully.\n", rec.CommitID)
	return nil
}

func runCommitRemove(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &commit.Manager{Repo: r}
	if err := mgr.Remove(args[0]); err != nil {
		return err
	}

	fmt.Printf("Commit '%s' removed successfully.\n", args[0])
	return nil
}

func runCommitClear(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &commit.Manager{Repo: r}
	if err := mgr.Clear(); err != nil {
		return err
	}

	fmt.Printf("All commits cleared except the '%s' commit.\n", models.LatestName)
	return nil
}

func runCommitList(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &commit.Manager{Repo: r}

	if commitListJSON {
		var records []*models.CommitRecord
		for entry := range mgr.List() {
			records = append(records, entry.Meta)
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	empty := true
	for entry := range mgr.List() {
		if empty {
			fmt.Println("Commits:")
			empty = false
		}
		if entry.Meta == nil {
			fmt.Printf("- %s: No metadata available.\n", entry.ID)
			continue
		}
		fmt.Printf("- %s: %s (author: %s, %s)\n",
			entry.ID, entry.Meta.Message, entry.Meta.Author, humanize.Time(entry.Meta.Timestamp))
	}
	if empty {
		fmt.Println("No commits found.")
	}
	return nil
}

func runCommitHistory(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &commit.Manager{Repo: r}

	if commitHistoryJSON {
		var records []models.CommitRecord
		for rec := range mgr.History() {
			records = append(records, rec)
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	empty := true
	for rec := range mgr.History() {
		if empty {
			fmt.Println("Commit History:")
			empty = false
		}
		fmt.Printf("- Commit ID: %s\n", rec.CommitID)
		fmt.Printf("  Author: %s\n", rec.Author)
		fmt.Printf("  Timestamp: %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Message: %s\n\n", rec.Message)
	}
	if empty {
		fmt.Println("No commits found in the history.")
	}
	return nil
}
