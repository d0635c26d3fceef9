package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document-file>",
	Short: "Print a readable outline of a document",
	Long:  `Parses a document file and prints its step/frame/block outline along with validation findings, rendered for the terminal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		}

		ed := lattice.New()
		page, err := ed.Parse(data)
		if err != nil {
			fmt.Printf("Error parsing document: %v\n", err)
			os.Exit(1)
		}

		tui.PrintBanner()

		report := tui.DocumentReport(page, ed.ValidatePage(page))
		render := tui.NewRenderer()
		out, err := render(report)
		if err != nil {
			// Fall back to the raw markdown.
			out = report
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
