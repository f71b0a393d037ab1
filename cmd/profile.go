package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/session"
	"github.com/misterclayt0n/formcoach/internal/storage"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.Profile()
		if errors.Is(err, storage.ErrNotOnboarded) {
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%s: %s\n", boldCyan("Name"), p.DisplayName)
		if p.WeightKg > 0 {
			fmt.Printf("%s: %.1f kg\n", boldCyan("Weight"), p.WeightKg)
		} else {
			fmt.Printf("%s: not set (calories assume %.0f kg)\n", boldCyan("Weight"), session.DefaultWeightKg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
