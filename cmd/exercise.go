package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/spf13/cobra"
)

var listExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercises that can be tracked",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		for _, ex := range c.List() {
			fmt.Printf("%-16s %s %s\n", boldCyan(ex.ID), ex.Name, faint(fmt.Sprintf("(%s, %s view)", ex.BodyPart, ex.CameraView)))
		}
		return nil
	},
}

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file]",
	Short: "Import exercise definitions from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		exercises, err := catalog.DecodeTOML(data)
		if err != nil {
			return err
		}

		path, err := userCatalogPath()
		if err != nil {
			return err
		}
		if err := catalog.MergeTOML(path, exercises); err != nil {
			return fmt.Errorf("failed to store exercises: %w", err)
		}

		fmt.Printf("✅ Imported %d exercises into %s\n", len(exercises), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listExercisesCmd)
	rootCmd.AddCommand(importExercisesCmd)
}
