package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/repo"
)

var addRecursive bool

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Track a file or directory",
	Long: `Add a file or directory to the repository index.

Files join the tracked file set; directories get an index entry, and with
--recursive their contained files are captured into the entry's file list.
The captured list is a cache taken at add time; re-run add --recursive to
pick up files created later.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Stop tracking a file or directory",
	Long: `Remove a path from the repository index. Existing snapshots are not
touched; they keep whatever was captured when they were taken.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)

	addCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "Capture a directory's contained files")
}

func runAdd(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	path := args[0]
	if err := r.Add(path, addRecursive); err != nil {
		if errors.Is(err, repo.ErrAlreadyTracked) {
			fmt.Printf("'%s' is already tracked.\n", path)
			return nil
		}
		return err
	}

	fmt.Printf("'%s' added to the repository.\n", path)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	if err := r.Remove(args[0]); err != nil {
		return err
	}

	fmt.Printf("'%s' removed from the repository.\n", args[0])
	return nil
}
