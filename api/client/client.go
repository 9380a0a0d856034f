package client

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/emporium-foundation/emporium/api"
)

// NewEmporiumRPC creates a new http jsonrpc client for an emporium node.
func NewEmporiumRPC(ctx context.Context, addr string, requestHeader http.Header) (api.Emporium, jsonrpc.ClientCloser, error) {
	var res api.EmporiumStruct
	closer, err := jsonrpc.NewMergeClient(ctx, addr, "Emporium",
		[]interface{}{
			&res.Internal,
		},
		requestHeader,
	)
	return &res, closer, err
}
