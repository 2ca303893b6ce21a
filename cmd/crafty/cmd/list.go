package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all packages available in the ArchCraft GitHub repository",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	m, err := newManager(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Fetching package list from ArchCraft GitHub...")

	pkgs, err := m.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch package list: %w", err)
	}

	if len(pkgs) == 0 {
		fmt.Fprintln(out, "(no packages)")
		return nil
	}

	fmt.Fprintf(out, "Available packages (%d total):\n", len(pkgs))
	for _, pkg := range pkgs {
		fmt.Fprintf(out, "- %s\n", pkg)
	}
	return nil
}
