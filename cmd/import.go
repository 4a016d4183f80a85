package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/hookupmap/internal/schema"
	"github.com/yungbote/hookupmap/internal/systemmap"
)

type importOptions struct {
	mapName   string
	overwrite bool
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <document.json>",
		Short: "Create a map store from a hookup JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(root)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := os.ReadFile(args[0])
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("read document: %w", err))
			}
			name := opts.mapName
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			mapOpts := a.Cfg.MapOptions()
			mapOpts.Overwrite = mapOpts.Overwrite || opts.overwrite
			location := a.Location(name)

			sm, res, err := systemmap.CreateFromDocument(cmd.Context(), a.Log, location, doc, mapOpts)
			if err != nil {
				return err
			}
			defer sm.Close()

			out := cmd.OutOrStdout()
			for _, w := range res.Warnings {
				fmt.Fprintln(out, "warning:", w.String())
			}
			fmt.Fprintf(out, "imported %s into %s (%d busses, %d nets, %d nodes, %d connections, %d pinouts)\n",
				args[0], location,
				res.Identifiers.Count(schema.KindBus),
				res.Identifiers.Count(schema.KindNet),
				res.Identifiers.Count(schema.KindNode),
				res.Identifiers.Count(schema.KindConnection),
				res.Identifiers.Count(schema.KindPinMap),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.mapName, "map", "", "Map name or store location (default: document file name)")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace an existing map with the same name")
	return cmd
}
