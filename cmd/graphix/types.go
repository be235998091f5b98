package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/koustreak/graphix/internal/native"
)

func typesCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the supported column type kinds",
		Action: func(_ context.Context, _ *cli.Command) error {
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tEXAMPLE\tSQL\tNATIVE")
			for _, e := range native.Catalog() {
				nat := e.Native
				if nat == "" {
					nat = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Kind, e.Example, e.SQL, nat)
			}
			return tw.Flush()
		},
	}
}
