package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/yungbote/hookupmap/internal/systemmap"
)

func newQueryCmd(root *rootOptions) *cobra.Command {
	var mapName string

	cmd := &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a read-only SQL query against a map and print rows as JSON lines",
		Args:  cobra.MinimumNArgs(1),
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

			params := make([]interface{}, 0, len(args)-1)
			for _, p := range args[1:] {
				params = append(params, p)
			}
			rows, err := sm.Query(cmd.Context(), args[0], params...)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, row := range rows {
				if err := enc.Encode(row); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapName, "map", "", "Map name or store location (required)")
	_ = cmd.MarkFlagRequired("map")
	return cmd
}
