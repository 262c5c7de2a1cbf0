package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"DrawPad/internal/pad"
	"DrawPad/internal/state"

	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		out    string
		width  float64
		height float64
		ratio  float64
	)
	cmd := &cobra.Command{
		Use:   "render RECORD",
		Short: "Replay a saved drawing into a PNG, JPEG, SVG or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = float64(cfg.Window.Width)
			}
			if height <= 0 {
				height = float64(cfg.Window.Height)
			}
			return render(args[0], out, pad.StaticElement{Width: width, Height: height, Ratio: ratio}, cfg.Pad.Options())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "drawing.png", "output file, format taken from the extension")
	cmd.Flags().Float64Var(&width, "width", 0, "surface width, defaults to the window width")
	cmd.Flags().Float64Var(&height, "height", 0, "surface height, defaults to the window height")
	cmd.Flags().Float64Var(&ratio, "ratio", 1, "device pixels per surface unit")
	return cmd
}

func render(record, out string, el pad.StaticElement, opts pad.Options) error {
	in, err := os.Open(record)
	if err != nil {
		return err
	}
	defer in.Close()
	groups, err := state.Load(in)
	if err != nil {
		return fmt.Errorf("load %s: %w", record, err)
	}

	p := pad.New(el, opts)
	defer p.Close()
	p.FromData(groups, pad.FromDataOptions{})

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := p.Export(f, filepath.Ext(out)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Rendered %d strokes to %s", len(groups), out)
	return nil
}
