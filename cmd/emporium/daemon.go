package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/node"
	"github.com/emporium-foundation/emporium/node/config"
)

var daemonCmd = &cli.Command{
	Name:  "daemon",
	Usage: "Start an emporium daemon process",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "api",
			Usage: "override the rpc listen address",
		},
	},
	Action: func(cctx *cli.Context) error {
		repo, err := repoPath(cctx)
		if err != nil {
			return err
		}

		cfgPath := filepath.Join(repo, "config.toml")
		cfg, err := config.FromFile(cfgPath)
		if err != nil {
			return err
		}
		if cctx.IsSet("api") {
			cfg.API.ListenAddress = cctx.String("api")
		}

		// persist the effective config on first run
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := os.MkdirAll(repo, 0755); err != nil {
				return xerrors.Errorf("creating repo dir: %w", err)
			}
			if err := cfg.WriteFile(cfgPath); err != nil {
				return err
			}
		}

		n, err := node.New(repo, cfg)
		if err != nil {
			return xerrors.Errorf("initializing node: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return n.Run(ctx)
	},
}
