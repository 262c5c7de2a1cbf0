package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	drawnet "DrawPad/internal/net"
	"DrawPad/internal/pad"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var (
		dir     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [URL]",
		Short: "Follow a drawing feed and save every change as a PNG",
		Long: "Follow a drawing feed and save every change as a PNG. Without a URL the\n" +
			"first feed announced on the local network is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			url := ""
			if len(args) == 1 {
				url = args[0]
			} else {
				feed, err := findFeed(ctx, timeout)
				if err != nil {
					return err
				}
				log.Printf("Found feed %q at %s", feed.Instance, feed.URL)
				url = feed.URL
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			return watch(ctx, url, dir)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory the snapshots are written to")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "how long to look for a feed")
	return cmd
}

func findFeed(ctx context.Context, timeout time.Duration) (drawnet.Feed, error) {
	var feeds []drawnet.Feed
	if err := drawnet.Browse(ctx, timeout, func(f drawnet.Feed) {
		feeds = append(feeds, f)
	}); err != nil {
		return drawnet.Feed{}, fmt.Errorf("browse feeds: %w", err)
	}
	if len(feeds) == 0 {
		return drawnet.Feed{}, errors.New("no drawing feed found on the network")
	}
	return feeds[0], nil
}

func watch(ctx context.Context, url, dir string) error {
	return drawnet.Watch(ctx, url, func(m drawnet.Message) {
		log.Printf("[%s] #%d %s, %d strokes", m.Session, m.Seq, m.Type, m.Strokes)
		if err := saveSnapshot(dir, m); err != nil {
			log.Printf("Failed to save snapshot: %v", err)
		}
	})
}

// saveSnapshot writes the message image to dir. An empty drawing removes
// the previous snapshot.
func saveSnapshot(dir string, m drawnet.Message) error {
	name := filepath.Join(dir, "drawpad-"+m.Session+".png")
	if m.Image == "" {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	mime, data, err := pad.DecodeDataURL(m.Image)
	if err != nil {
		return err
	}
	if mime != pad.MimePNG {
		return fmt.Errorf("unexpected snapshot type %s", mime)
	}
	return os.WriteFile(name, data, 0o644)
}
