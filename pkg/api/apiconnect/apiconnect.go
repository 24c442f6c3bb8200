// Package apiconnect wires the splitledger.v1 services to Connect: procedure names,
// handler constructors and typed clients. Every handler and client uses api.Codec.
package apiconnect

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
)

// PackageName is the fully-qualified name prefix of every service in this package.
const PackageName = "splitledger.v1"

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// router dispatches on the exact procedure path.
type router map[string]http.Handler

func (rt router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := rt[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
