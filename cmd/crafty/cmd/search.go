package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search for a package in the ArchCraft GitHub repository",
	Long:  "List the archives whose package name contains the keyword, ignoring case.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]
	out := cmd.OutOrStdout()

	m, err := newManager(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Searching for '%s' in ArchCraft GitHub...\n", keyword)

	pkgs, err := m.Search(cmd.Context(), keyword)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(pkgs) == 0 {
		fmt.Fprintf(out, "No packages found for '%s'\n", keyword)
		return nil
	}

	fmt.Fprintln(out, "Found packages:")
	for _, pkg := range pkgs {
		fmt.Fprintf(out, "- %s\n", pkg)
	}
	return nil
}
