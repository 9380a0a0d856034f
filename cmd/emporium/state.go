package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/api"
	"github.com/emporium-foundation/emporium/api/client"
	"github.com/emporium-foundation/emporium/chain/address"
)

var stateCmd = &cli.Command{
	Name:  "state",
	Usage: "Inspect settlement state on a running node",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "api",
			Value: "http://127.0.0.1:7766/rpc/v0",
			Usage: "node rpc endpoint",
		},
	},
	Subcommands: []*cli.Command{
		stateQueryCmd("charter", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			c, err := a.StateCharter(ctx, addr)
			return c, err
		}),
		stateQueryCmd("charter-treasury", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			t, err := a.StateCharterTreasury(ctx, addr)
			return t, err
		}),
		stateQueryCmd("listing", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			l, err := a.StateListing(ctx, addr)
			return l, err
		}),
		stateQueryCmd("cashier", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			c, err := a.StateCashier(ctx, addr)
			return c, err
		}),
		stateQueryCmd("cashier-treasury", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			t, err := a.StateCashierTreasury(ctx, addr)
			return t, err
		}),
		stateQueryCmd("receipt", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			r, err := a.StateReceipt(ctx, addr)
			return r, err
		}),
		stateQueryCmd("account", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			acct, err := a.StateTokenAccount(ctx, addr)
			return acct, err
		}),
		stateQueryCmd("mint", func(ctx context.Context, a api.Emporium, addr address.Address) (interface{}, error) {
			m, err := a.StateMint(ctx, addr)
			return m, err
		}),
	},
}

func stateQueryCmd(name string, query func(context.Context, api.Emporium, address.Address) (interface{}, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Print a " + name + " record",
		ArgsUsage: "<address>",
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 1 {
				return xerrors.Errorf("expected one address argument")
			}
			addr, err := address.FromString(cctx.Args().First())
			if err != nil {
				return xerrors.Errorf("parsing address: %w", err)
			}

			ctx := cctx.Context
			a, closer, err := client.NewEmporiumRPC(ctx, cctx.String("api"), http.Header{})
			if err != nil {
				return xerrors.Errorf("connecting to node: %w", err)
			}
			defer closer()

			out, err := query(ctx, a, addr)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
}
