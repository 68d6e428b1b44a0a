package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pders01/snapvault/internal/models"
	"github.com/pders01/snapvault/internal/version"
)

var (
	versionForce       bool
	versionAuthor      string
	versionDescription string
	versionListJSON    bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage named versions",
}

var versionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a named version from the current tracked set",
	Long: `Take a full snapshot of every tracked file and directory under
versions/<name>, with author and description metadata and the captured
file list. An existing name is refused unless --force is given, which
discards the old version entirely first.`,
	Args: cobra.ExactArgs(1),
	RunE: runVersionCreate,
}

var versionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a named version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionDelete,
}

var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions in creation order",
	RunE:  runVersionList,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.AddCommand(versionCreateCmd)
	versionCmd.AddCommand(versionDeleteCmd)
	versionCmd.AddCommand(versionListCmd)

	versionCreateCmd.Flags().BoolVar(&versionForce, "force", false, "Overwrite an existing version")
	versionCreateCmd.Flags().StringVar(&versionAuthor, "author", "", "Version author (default from config)")
	versionCreateCmd.Flags().StringVar(&versionDescription, "description", "", "Version description (default from config)")
	versionListCmd.Flags().BoolVar(&versionListJSON, "json", false, "Output as JSON")
}

func runVersionCreate(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(r)
	if err != nil {
		return err
	}

	opts := version.Options{Author: versionAuthor, Description: versionDescription}
	if opts.Author == "" {
		opts.Author = cfg.DefaultAuthor()
	}
	if opts.Description == "" {
		opts.Description = cfg.DefaultVersionDescription()
	}

	mgr := &version.Manager{Repo: r}
	rec, res, err := mgr.Create(args[0], opts, versionForce)
	if err != nil {
		return err
	}

	for _, p := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: tracked path '%s' does not exist, skipped.\n", p)
	}
	fmt.Printf("Version '%s' created successfully (%d paths captured).\n", rec.Name, len(res.Captured))
	return nil
}

func runVersionDelete(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &version.Manager{Repo: r}
	if err := mgr.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Version '%s' deleted successfully.\n", args[0])
	return nil
}

func runVersionList(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	mgr := &version.Manager{Repo: r}

	if versionListJSON {
		var records []*models.VersionRecord
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

	if len(r.Index.Versions) == 0 {
		fmt.Println("No versions found.")
		return nil
	}

	fmt.Println("Versions:")
	for entry := range mgr.List() {
		if entry.Meta == nil {
			fmt.Printf("- %s: No metadata available.\n", entry.Name)
			continue
		}
		fmt.Printf("- %s: %s (created %s by %s)\n",
			entry.Name,
			entry.Meta.Description,
			humanize.Time(entry.Meta.CreatedAt),
			entry.Meta.Author,
		)
	}
	return nil
}
