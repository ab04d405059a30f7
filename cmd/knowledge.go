package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapulam/ScratchAgentic/internal/knowledge"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the calendar policy knowledge base",
}

var knowledgeImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import policy entries from a JSON file",
	Long:  `Imports entries from a JSON array of {topic, content} objects into the knowledge database. The modify-event handler folds the whole corpus into its prompt.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runKnowledgeImport,
}

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all knowledge base entries",
	RunE:  runKnowledgeList,
}

func init() {
	knowledgeCmd.AddCommand(knowledgeImportCmd)
	knowledgeCmd.AddCommand(knowledgeListCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledgeImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.KnowledgePath == "" {
		return fmt.Errorf("no knowledge path configured")
	}

	store, err := knowledge.Open(cfg.KnowledgePath)
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}
	defer store.Close()

	n, err := store.Import(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("importing entries: %w", err)
	}

	total, err := store.Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d entries (%d total)\n", n, total)
	return nil
}

func runKnowledgeList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openKnowledge(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Println("No knowledge database found.")
		return nil
	}
	defer store.Close()

	entries, err := store.Lookup(context.Background(), "")
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Knowledge base is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-20s %s\n", e.Topic, e.Content)
	}
	return nil
}
