package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/misterclayt0n/formcoach/internal/config"
	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/spf13/cobra"
)

var (
	onboardName   string
	onboardWeight float64
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the database, the config file and your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("✅ Config written to %s\n", path)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		profile := models.Profile{
			DisplayName:        onboardName,
			OnboardingComplete: true,
			WeightKg:           onboardWeight,
		}
		if err := st.SaveProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		fmt.Printf("✅ Welcome, %s! Run `formcoach exercises` to see what can be tracked.\n", onboardName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
	initSetupCmd.Flags().StringVarP(&onboardName, "name", "n", "", "Your display name")
	initSetupCmd.Flags().Float64VarP(&onboardWeight, "weight", "w", 0, "Body weight in kg, used for calorie estimates")
	initSetupCmd.MarkFlagRequired("name")
}
