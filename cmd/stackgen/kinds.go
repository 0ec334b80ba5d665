package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rickchristie/piece/pieces"
	"github.com/spf13/cobra"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [NAME]",
		Short: "List the document kinds, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := pieces.NewRegistry()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				kind, ok := reg.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown kind %q", args[0])
				}
				_, err := fmt.Fprint(out, kind.Describe())
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tDESCRIPTION")
			for _, kind := range reg.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\n", kind.Name(), kind.Description())
			}
			return tw.Flush()
		},
	}
}
