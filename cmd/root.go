package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mdpeek",
	Short: "Fast local markdown viewer with live reload",
	Long: `mdpeek renders a markdown file in your browser and keeps the page in
sync while you edit: saves reload the content in place, preserving
scroll position. It understands GitHub-flavored markdown, syntax
highlighting, KaTeX math and Mermaid diagrams, and can export static
HTML or PDF.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
