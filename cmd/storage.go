package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"soundest/store"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the durable storage backend",
	Long:  `Verifies that the configured storage backend (file or redis) is reachable and can round-trip a value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("backend: %s\n", cfg.StorageBackend)

		if redisStore, ok := storage.(*store.Redis); ok {
			if err := redisStore.Check(); err != nil {
				return fmt.Errorf("redis check failed: %w", err)
			}
			fmt.Println("redis: ok")
			return nil
		}

		const probe = "storage_check"
		if err := storage.Set(probe, "ok"); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		value, err := storage.Get(probe)
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		if value != "ok" {
			return fmt.Errorf("unexpected probe value: got %s", value)
		}
		if err := storage.Delete(probe); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Println("storage: ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
