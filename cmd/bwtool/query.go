package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/schani/bwproc"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var f effectFlags
	cmd := &cobra.Command{
		Use:   "query <input> <x> <y>",
		Short: "Print the intermediate values of one pixel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			return runQuery(&f, args[0], x, y)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func runQuery(f *effectFlags, inPath string, x, y int) error {
	img, err := imaging.Open(filepath.Clean(inPath), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	src, err := bwproc.Widen8(bwproc.Image8FromImage(img))
	if err != nil {
		return err
	}

	p, err := f.params(src.Width, src.Height)
	if err != nil {
		return err
	}
	q, err := bwproc.QueryPixel(src, x, y, &p)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "mixed: %d\n", q.Mixed)
	for i, v := range q.Layered {
		fmt.Fprintf(os.Stdout, "layer %d: %d\n", i, v)
	}
	fmt.Fprintf(os.Stdout, "out: %d %d %d\n", q.Out[0], q.Out[1], q.Out[2])
	return nil
}
