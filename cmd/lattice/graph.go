package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/internal/presentation/graph"
	"github.com/latticehq/lattice/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document-file>",
	Short: "Export a flow graph visualization",
	Long:  `Reads a document file and outputs a Mermaid diagram (graph TD) of an embedded flow's navigation logic. With no --block flag the first application-flow block is used.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		blockID, _ := cmd.Flags().GetString("block")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		}

		page, err := lattice.New().Parse(data)
		if err != nil {
			fmt.Printf("Error parsing document: %v\n", err)
			os.Exit(1)
		}

		flow, err := findFlow(page, blockID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(flow))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("block", "", "Id of the application-flow block to render")
}

func findFlow(page *domain.Page, blockID string) (*domain.Flow, error) {
	if blockID != "" {
		block, ok := page.FlowBlockByID(blockID)
		if !ok {
			return nil, fmt.Errorf("no application-flow block with id %q", blockID)
		}
		return block.Flow, nil
	}
	for _, step := range page.Steps {
		for _, frame := range step.Frames {
			for _, stack := range frame.Stacks {
				for _, block := range stack.Blocks {
					if block.Type == domain.BlockApplicationFlow && block.Flow != nil {
						return block.Flow, nil
					}
				}
			}
		}
	}
	return nil, fmt.Errorf("document contains no application-flow block")
}
