package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document-file>",
	Short: "Check a document for structural violations",
	Long:  `Validates a funnel document file (JSON or YAML) and reports every structural violation in one batch: dangling navigation references, self references, empty redirect URLs, duplicate ids.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		violations, err := runValidate(args[0])
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(violations) > 0 {
			for _, v := range violations {
				fmt.Printf("- [%s] %s (%s)\n", v.Code, v.Message, v.Path)
			}
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) ([]domain.Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ed := lattice.New()
	page, err := ed.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return ed.ValidatePage(page), nil
}
