package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"DrawPad/internal/config"
	drawnet "DrawPad/internal/net"
	"DrawPad/internal/pad"
	"DrawPad/internal/ui"

	"fyne.io/fyne/v2/storage"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:          "drawpad",
		Short:        "Freehand drawing pad",
		SilenceUsage: true,
		RunE:         runHost,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML configuration file")
	root.Flags().Bool("feed", false, "publish changes to read-only viewers")
	root.Flags().String("listen", "", "feed listen address")
	root.Flags().Bool("advertise", false, "announce the feed over mDNS")
	root.Flags().String("image", "", "image file or data URL shown when the board opens")
	root.Flags().Bool("read-only", false, "show the drawing without taking input")
	root.Flags().String("sign-as", "", "offer to sign with this name")

	root.AddCommand(renderCmd(), watchCmd(), configCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.LoadFile(configFile)
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}

func runHost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("feed") {
		cfg.Feed.Enabled, _ = flags.GetBool("feed")
	}
	if flags.Changed("listen") {
		cfg.Feed.Listen, _ = flags.GetString("listen")
		cfg.Feed.Enabled = true
	}
	if flags.Changed("advertise") {
		cfg.Feed.Advertise, _ = flags.GetBool("advertise")
	}
	if flags.Changed("image") {
		cfg.Window.Image, _ = flags.GetString("image")
	}
	if flags.Changed("read-only") {
		cfg.Window.ReadOnly, _ = flags.GetBool("read-only")
	}
	if flags.Changed("sign-as") {
		cfg.Window.SignAs, _ = flags.GetString("sign-as")
	}
	image, err := imageDataURL(cfg.Window.Image)
	if err != nil {
		return err
	}

	log.Println("Starting drawpad")
	app := ui.NewApp()
	board := ui.NewBoardWidget(cfg.Pad.Options(), ui.WithReadOnly(cfg.Window.ReadOnly))

	feedURL := ""
	if cfg.Feed.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := drawnet.NewHub()
		addr, err := startFeed(ctx, cfg.Feed.Listen, hub)
		if err != nil {
			return fmt.Errorf("start feed: %w", err)
		}
		feedURL = drawnet.FeedURL(addr)

		if cfg.Feed.Advertise {
			server, err := drawnet.Advertise(cfg.Feed.Instance, drawnet.Port(addr), hub.Session())
			if err != nil {
				log.Printf("mDNS advertisement failed: %v", err)
			} else {
				defer server.Shutdown()
				log.Printf("Advertising feed as %s", drawnet.ServiceType)
			}
		}

		board.OnChange = func(c ui.Change) {
			if err := hub.Publish(drawnet.Message{Type: c.Kind, Image: c.Image, Strokes: c.Strokes}); err != nil {
				log.Printf("Failed to publish %s: %v", c.Kind, err)
			}
		}
		board.SetStatus("Sharing at " + feedURL)
	}

	if image != "" {
		board.SetImage(image)
	}
	ui.RunApp(app, cfg, board, feedURL)
	return nil
}

// imageDataURL returns ref as a data URL, reading it from disk unless it
// already is one.
func imageDataURL(ref string) (string, error) {
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ref, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return pad.EncodeDataURL(storage.NewFileURI(ref).MimeType(), data), nil
}

// startFeed runs the hub in the background and waits until it is listening.
func startFeed(ctx context.Context, listen string, hub *drawnet.Hub) (net.Addr, error) {
	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- drawnet.Serve(ctx, listen, hub, func(a net.Addr) { addrc <- a })
	}()
	select {
	case addr := <-addrc:
		go func() {
			if err := <-errc; err != nil {
				log.Printf("Feed stopped: %v", err)
			}
		}()
		return addr, nil
	case err := <-errc:
		return nil, err
	}
}
