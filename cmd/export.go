package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/hookupmap/internal/systemmap"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var mapName, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a map back out as a hookup JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(root)
			if err != nil {
				return err
			}
			defer a.Close()

			sm, err := systemmap.Open(cmd.Context(), a.Log, a.Location(mapName), a.Cfg.MapOptions())
			if err != nil {
				return err
			}
			defer sm.Close()

			doc, err := sm.Export(cmd.Context())
			if err != nil {
				return err
			}
			doc = append(doc, '\n')
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapName, "map", "", "Map name or store location (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("map")
	return cmd
}
