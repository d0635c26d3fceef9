package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored documents",
	Long:  `List, inspect, and remove documents from the configured store.`,
}

var docsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored documents",
	Run: func(cmd *cobra.Command, args []string) {
		ed, closeStore := newEditor(cmd)
		defer closeStore()

		ids, err := ed.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing documents: %v\n", err)
			os.Exit(1)
		}

		if len(ids) == 0 {
			fmt.Println("No documents found.")
			return
		}

		fmt.Println("Documents:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
	},
}

var docsCatCmd = &cobra.Command{
	Use:   "cat <document-id>",
	Short: "Print a stored document as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ed, closeStore := newEditor(cmd)
		defer closeStore()

		page, err := ed.Get(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading document '%s': %v\n", args[0], err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling document: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <document-id>...",
	Short: "Remove one or more documents",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ed, closeStore := newEditor(cmd)
		defer closeStore()

		hasError := false
		for _, docID := range args {
			if err := ed.Delete(cmd.Context(), docID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", docID, err)
				hasError = true
			} else {
				fmt.Printf("Removed document '%s'\n", docID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

var docsPutCmd = &cobra.Command{
	Use:   "put <document-file>",
	Short: "Store a document from a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ed, closeStore := newEditor(cmd)
		defer closeStore()

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		}

		page, err := ed.Parse(data)
		if err != nil {
			fmt.Printf("Error parsing document: %v\n", err)
			os.Exit(1)
		}

		id, err := ed.Create(cmd.Context(), page)
		if err != nil {
			fmt.Printf("Error storing document: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stored document '%s'\n", id)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsLsCmd)
	docsCmd.AddCommand(docsCatCmd)
	docsCmd.AddCommand(docsRmCmd)
	docsCmd.AddCommand(docsPutCmd)
}
