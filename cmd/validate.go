package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/hookupmap/internal/graph"
	"github.com/yungbote/hookupmap/internal/schema"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Check a hookup JSON document without writing a store",
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

			g, warnings, err := graph.Assemble(doc, schema.Default())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, "warning:", w.String())
			}
			counts := g.Counts()
			fmt.Fprintf(out, "%s is valid (%d busses, %d nets, %d nodes, %d connections, %d pinouts)\n",
				args[0],
				counts[schema.KindBus], counts[schema.KindNet], counts[schema.KindNode],
				counts[schema.KindConnection], counts[schema.KindPinMap],
			)
			return nil
		},
	}
}
