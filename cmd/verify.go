package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/version"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <version>",
	Short: "Check a version's contents against its recorded tree hash",
	Long: `Recompute the hash of a version's snapshot tree and compare it with the
hash recorded at creation time. A mismatch means the stored snapshot was
altered after it was taken.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &version.Manager{Repo: r}
	ok, want, got, err := mgr.Verify(args[0])
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("version '%s' is corrupt: recorded hash %s, computed %s", args[0], want, got)
	}
	fmt.Printf("Version '%s' verified OK (%s).\n", args[0], got)
	return nil
}
