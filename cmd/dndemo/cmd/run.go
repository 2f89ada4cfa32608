package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scene.yaml>",
		Short: "Replay a scene's gestures and print the final orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			if err := s.Replay(); err != nil {
				return err
			}
			for _, o := range s.Orders() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", o.Name, strings.Join(o.Items, " "))
			}
			a.logger.Info("scene replayed", zap.String("scene", args[0]))
			return nil
		},
	}
}
