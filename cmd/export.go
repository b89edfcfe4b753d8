package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdpeek/mdpeek/internal/assets"
	"github.com/mdpeek/mdpeek/internal/export"
	"github.com/mdpeek/mdpeek/internal/progress"
	"github.com/mdpeek/mdpeek/internal/render"
)

var (
	exportOut     string
	exportPDF     bool
	exportTheme   string
	exportInclude []string
	exportExclude []string
	exportEngine  string
)

var exportCmd = &cobra.Command{
	Use:   "export <file-or-directory>",
	Short: "Export markdown to standalone HTML or PDF",
	Long: `Exports a markdown file as a self-contained HTML document (styles
inlined, no scripts) or as PDF via a headless Chromium browser. Given a
directory, every markdown file beneath it is exported to a mirrored
HTML tree.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file or directory")
	exportCmd.Flags().BoolVar(&exportPDF, "pdf", false, "export PDF instead of HTML")
	exportCmd.Flags().StringVarP(&exportTheme, "theme", "t", "", "theme: system, light, dark or sepia")
	exportCmd.Flags().StringSliceVar(&exportInclude, "include", nil, "glob patterns to include (directory export)")
	exportCmd.Flags().StringSliceVar(&exportExclude, "exclude", nil, "glob patterns to exclude (directory export)")
	exportCmd.Flags().StringVar(&exportEngine, "pdf-engine", "", "browser binary used for PDF export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(src string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	theme, err := resolveTheme(exportTheme, nil, cfg)
	if err != nil {
		return err
	}
	renderer := render.New(assets.NewCache(cfg.AssetsDir))

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("file not found: %s", src)
	}

	if info.IsDir() {
		if exportPDF {
			return fmt.Errorf("PDF export works on single files, not directories")
		}
		out := exportOut
		if out == "" {
			out = "html"
		}
		include := exportInclude
		if include == nil {
			include = cfg.Include
		}
		exclude := exportExclude
		if exclude == nil {
			exclude = cfg.Exclude
		}
		n, err := export.Tree(renderer, src, out, theme, include, exclude, progress.Detect(false))
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d files to %s\n", n, out)
		return nil
	}

	if exportPDF {
		out := exportOut
		if out == "" {
			out = replaceExt(src, ".pdf")
		}
		engine := exportEngine
		if engine == "" {
			engine = cfg.PDFEngine
		}
		if err := export.PDF(renderer, src, out, theme, engine); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", out)
		return nil
	}

	out := exportOut
	if out == "" {
		out = replaceExt(src, ".html")
	}
	if err := export.HTML(renderer, src, out, theme); err != nil {
		return err
	}
	fmt.Printf("Exported %s\n", out)
	return nil
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > strings.LastIndexByte(path, '/') {
		return path[:i] + ext
	}
	return path + ext
}
