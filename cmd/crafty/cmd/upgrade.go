package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [package]",
	Short: "Upgrade a previously installed package",
	Long:  "Reinstall a package installed by crafty from the latest listing. Without an argument every package crafty installed is upgraded.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	pkg := ""
	if len(args) > 0 {
		pkg = args[0]
	}

	m, err := newManager(cmd)
	if err != nil {
		return err
	}

	if err := m.Upgrade(cmd.Context(), pkg); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}
	return nil
}
