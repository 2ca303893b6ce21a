package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a package from ArchCraft GitHub",
	Long:  "Download a package archive from the ArchCraft GitHub repository and install it with pacman.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	m, err := newManager(cmd)
	if err != nil {
		return err
	}

	if err := m.Install(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("install %s: %w", args[0], err)
	}
	return nil
}
