package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/koustreak/graphix/internal/server"
)

func serveCommand(stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the compiler over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default from GRAPHIX_SERVER_ADDR)"},
			envFile(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := setup(cmd, stderr)
			if err != nil {
				return err
			}
			if cmd.IsSet("addr") {
				cfg.Server.Addr = cmd.String("addr")
			}
			srv := server.New(server.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}, log)
			return srv.ListenAndServe(ctx)
		},
	}
}
