package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/emporium-foundation/emporium/build"
)

var log = logging.Logger("main")

const flagRepo = "repo"

func main() {
	app := &cli.App{
		Name:    "emporium",
		Usage:   "Marketplace settlement node",
		Version: build.UserVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagRepo,
				EnvVars: []string{"EMPORIUM_PATH"},
				Value:   "~/.emporium",
				Usage:   "repo directory",
			},
		},
		Commands: []*cli.Command{
			daemonCmd,
			stateCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}
}

func repoPath(cctx *cli.Context) (string, error) {
	return homedir.Expand(cctx.String(flagRepo))
}
