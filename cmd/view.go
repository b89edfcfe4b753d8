package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdpeek/mdpeek/internal/assets"
	"github.com/mdpeek/mdpeek/internal/preview"
	"github.com/mdpeek/mdpeek/internal/render"
	"github.com/mdpeek/mdpeek/internal/scheme"
	"github.com/mdpeek/mdpeek/internal/state"
)

var (
	viewTheme     string
	viewPort      int
	viewNoBrowser bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a markdown file in the browser with live reload",
	Long: `Renders the given markdown file (a path or a mdpeek:// URL) and serves
it on a loopback port. The page reloads in place whenever the file is
saved. Ctrl+C stops the viewer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(args[0])
	},
}

func init() {
	viewCmd.Flags().StringVarP(&viewTheme, "theme", "t", "", "theme: system, light, dark or sepia")
	viewCmd.Flags().IntVarP(&viewPort, "port", "p", -1, "preview port (0 picks a free port)")
	viewCmd.Flags().BoolVar(&viewNoBrowser, "no-browser", false, "do not open the browser")
	rootCmd.AddCommand(viewCmd)
}

func runView(arg string) error {
	path, err := scheme.Resolve(arg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
		if err := store.TouchRecent(path); err != nil {
			log.Printf("cmd: recording recent file: %v", err)
		}
	}

	theme, err := resolveAndPersistTheme(viewTheme, store, cfg)
	if err != nil {
		return err
	}

	sidebarHidden := cfg.SidebarHidden
	if store != nil {
		if saved, err := store.Setting(state.KeySidebar); err == nil && saved != "" {
			sidebarHidden = saved == "true"
		}
	}

	hub := preview.NewHub()
	ctrl := preview.NewController(render.New(assets.NewCache(cfg.AssetsDir)), hub, theme, sidebarHidden)
	if store != nil {
		ctrl.OnSidebar = func(hidden bool) {
			if err := store.SetSetting(state.KeySidebar, strconv.FormatBool(hidden)); err != nil {
				log.Printf("cmd: persisting sidebar state: %v", err)
			}
		}
	}

	if err := ctrl.Open(path); err != nil {
		return err
	}
	defer ctrl.Close()

	debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
	if err := ctrl.Watch(debounce); err != nil {
		return err
	}

	port := cfg.Port
	if viewPort >= 0 {
		port = viewPort
	}
	srv := preview.NewServer(preview.ServerConfig{Port: port, Verbose: verbose}, ctrl, hub)
	if err := srv.Listen(); err != nil {
		return err
	}

	fmt.Printf("Viewing %s at %s\n", path, srv.URL())
	fmt.Println("Press Ctrl+C to stop.")
	if cfg.OpenBrowser && !viewNoBrowser {
		go preview.OpenBrowser(srv.URL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
