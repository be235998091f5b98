package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/koustreak/graphix/internal/decl"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/generator"
)

func generateCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Compile a declaration file into schema documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "declaration file (YAML)", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory (default from GRAPHIX_OUT_DIR)"},
			&cli.BoolFlag{Name: "ddl", Usage: "also write a CREATE TABLE preview per entity"},
			&cli.BoolFlag{Name: "publish", Usage: "upload artifacts to the configured object store"},
			&cli.BoolFlag{Name: "stdout", Usage: "print artifacts instead of writing files"},
			envFile(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := setup(cmd, stderr)
			if err != nil {
				return err
			}
			if cmd.IsSet("out") {
				cfg.Output.Dir = cmd.String("out")
			}
			withDDL := cfg.Output.DDL || cmd.Bool("ddl")

			decls, err := decl.LoadFile(cmd.String("file"))
			if err != nil {
				return err
			}

			options := []generator.Option{generator.WithLogger(log)}
			if cmd.Bool("publish") {
				store, err := openStore(ctx, cfg, "--publish")
				if err != nil {
					return err
				}
				defer store.Close()
				options = append(options, generator.WithStore(store, cfg.Store.Filestore()))
			}

			gen := generator.New(generator.Options{OutDir: cfg.Output.Dir, DDL: withDDL}, options...)
			arts, err := gen.Generate(ctx, decls)
			if err != nil {
				return err
			}

			if cmd.Bool("stdout") {
				for i, a := range arts {
					if i > 0 {
						fmt.Fprintln(stdout)
					}
					if _, err := stdout.Write(a.HCL); err != nil {
						return errs.Wrap(errs.ErrKindIOFailed, "failed to write output", err)
					}
					if a.DDL != "" {
						fmt.Fprintf(stdout, "\n%s", a.DDL)
					}
				}
				return nil
			}

			written, err := gen.Write(ctx, arts)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(stdout, path)
			}
			return nil
		},
	}
}
