package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lotirium/SUNDAY/internal/chat"
	"github.com/lotirium/SUNDAY/internal/config"
	"github.com/lotirium/SUNDAY/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage recorded conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		sessions, err := store.Sessions()
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			cmd.Println("No recorded conversations.")
			return nil
		}
		for _, s := range sessions {
			cmd.Printf("%s  %s  %d message(s)\n", s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"), s.Messages)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <session-id> <file>",
	Short: "Export a session as a JSON conversation log",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		if err := store.ExportJSON(args[0], args[1]); err != nil {
			return fmt.Errorf("exporting session: %w", err)
		}
		cmd.Printf("Exported %s to %s\n", args[0], args[1])
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON conversation log as a new session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		id, err := store.ImportJSON(args[0])
		if err != nil {
			return fmt.Errorf("importing log: %w", err)
		}
		cmd.Printf("Imported as session %s\n", id)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete sessions older than the retention period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		deleted, err := store.Prune(cfg.RetentionDuration())
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}
		if deleted == 0 {
			cmd.Println("Nothing to prune.")
		} else {
			cmd.Printf("Pruned %d session(s).\n", deleted)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.HistoryPath()
		store, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		sessions, messages, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		cmd.Printf("History: %s\n", dbPath)
		cmd.Printf("Sessions: %d\n", sessions)
		cmd.Printf("Messages: %d\n", messages)
		cmd.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyCmd.AddCommand(historyStatsCmd)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func writeMessagesJSON(msgs []chat.Message, path string) error {
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding conversation: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
