package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/koustreak/graphix/internal/config"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/filestore/minio"
	"github.com/koustreak/graphix/internal/generator"
)

func fetchCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Print a published schema document from the object store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "table", Aliases: []string{"t"}, Usage: "table whose artifact to print", Required: true},
			&cli.BoolFlag{Name: "sql", Usage: "print the DDL preview instead of the document"},
			envFile(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := setup(cmd, stderr)
			if err != nil {
				return err
			}

			name := cmd.String("table") + ".hcl"
			if cmd.Bool("sql") {
				name = cmd.String("table") + ".sql"
			}

			store, err := openStore(ctx, cfg, "fetch")
			if err != nil {
				return err
			}
			defer store.Close()

			gen := generator.New(generator.Options{}, generator.WithStore(store, cfg.Store.Filestore()), generator.WithLogger(log))
			_, err = gen.Fetch(ctx, name, stdout)
			return err
		},
	}
}

// openStore connects to the configured object store on behalf of the
// command or flag named by what.
func openStore(ctx context.Context, cfg *config.Config, what string) (*minio.Driver, error) {
	fs := cfg.Store.Filestore()
	if !fs.Enabled() {
		return nil, errs.New(errs.ErrKindInvalidInput, what+" needs GRAPHIX_STORE_ENDPOINT")
	}
	return minio.New(ctx, fs)
}
