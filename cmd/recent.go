package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentClear bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := openStore(cfg)
		if store == nil {
			return fmt.Errorf("state database unavailable")
		}
		defer store.Close()

		if recentClear {
			if err := store.ClearRecent(); err != nil {
				return err
			}
			fmt.Println("Recent files cleared.")
			return nil
		}

		paths, err := store.RecentFiles()
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No recent files.")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "clear the recent files list")
	rootCmd.AddCommand(recentCmd)
}
