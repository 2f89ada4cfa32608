package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var out string
	var replay bool
	c := &cobra.Command{
		Use:   "snapshot <scene.yaml>",
		Short: "Render a scene to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			if replay {
				if err := s.Replay(); err != nil {
					return err
				}
			}
			img, err := s.Render(a.background())
			if err != nil {
				return fmt.Errorf("failed to render scene: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("failed to encode %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info("snapshot written",
				zap.String("file", out),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "scene.png", "PNG file to write")
	c.Flags().BoolVar(&replay, "replay", false, "replay the scene's gestures before rendering")
	return c
}
