// Package node wires the settlement program to its runtime dependencies:
// a persistent datastore, the jsonrpc surface, and metrics export.
package node

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	ocprom "contrib.go.opencensus.io/exporter/prometheus"
	"github.com/filecoin-project/go-jsonrpc"
	"github.com/gorilla/mux"
	badgerds "github.com/ipfs/go-ds-badger2"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats/view"
	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/chain/market"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/metrics"
	"github.com/emporium-foundation/emporium/node/config"
)

var log = logging.Logger("node")

type Node struct {
	cfg *config.FullNode
	ds  *badgerds.Datastore
	srv *http.Server

	API *EmporiumAPI
}

// New opens (creating if needed) the repo directory and builds a ready
// node: datastore, state tree, program, rpc handler.
func New(repoPath string, cfg *config.FullNode) (*Node, error) {
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return nil, xerrors.Errorf("creating repo dir: %w", err)
	}

	dsPath := filepath.Join(repoPath, cfg.Datastore.Path)
	opts := badgerds.DefaultOptions
	ds, err := badgerds.NewDatastore(dsPath, &opts)
	if err != nil {
		return nil, xerrors.Errorf("opening datastore at %s: %w", dsPath, err)
	}

	prog := market.NewProgram(state.NewTree(ds))
	eapi := &EmporiumAPI{Program: prog}

	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("Emporium", eapi)

	r := mux.NewRouter()
	r.Handle("/rpc/v0", rpcServer)

	if cfg.Metrics.Enabled {
		if err := view.Register(metrics.DefaultViews...); err != nil {
			log.Warnf("registering metric views: %s", err)
		}
		exporter, err := ocprom.NewExporter(ocprom.Options{Namespace: "emporium"})
		if err != nil {
			return nil, xerrors.Errorf("creating prometheus exporter: %w", err)
		}
		r.Handle("/debug/metrics", exporter)
	}

	return &Node{
		cfg: cfg,
		ds:  ds,
		srv: &http.Server{Addr: cfg.API.ListenAddress, Handler: r},
		API: eapi,
	}, nil
}

// Run serves the rpc endpoint until the context is cancelled.
func (n *Node) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		log.Infow("rpc listening", "addr", n.cfg.API.ListenAddress)
		done <- n.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return n.Shutdown(context.Background())
	case err := <-done:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (n *Node) Shutdown(ctx context.Context) error {
	if err := n.srv.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		log.Warnf("shutting down rpc server: %s", err)
	}
	return n.ds.Close()
}
