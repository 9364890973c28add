package gateAuth

import (
	"net/http"

	"github.com/gatentry/gateAuth/internal"
	"github.com/gatentry/gateAuth/transport"
)

type outcome int

const (
	outcomeOK outcome = iota
	outcomeOutage
	outcomeUnauthorized
	outcomeRetry
	outcomeBusinessError
)

// classify maps one received response to an outcome. Order matters:
//
//  1. 5xx or an HTML body means the edge, not the API, answered — outage.
//     This takes precedence over the 401 rules: an HTML 401 is a proxy
//     failure page, not an auth rejection.
//  2. 2xx is success.
//  3. 401 on an auth-bootstrap route is final (refreshing to fix the
//     refresh endpoint would loop).
//  4. The first 401 elsewhere earns one refresh-and-retry; a 401 after the
//     retry is final.
//  5. Everything else is an ordinary business error.
func (g *Gateway) classify(resp *transport.Response, path string, retried bool) outcome {
	if resp.StatusCode >= 500 || internal.LooksLikeHTML(resp.ContentType(), resp.Body) {
		return outcomeOutage
	}
	if resp.IsSuccess() {
		return outcomeOK
	}
	if resp.StatusCode == http.StatusUnauthorized {
		if g.isBootstrapRoute(path) || retried {
			return outcomeUnauthorized
		}
		return outcomeRetry
	}
	return outcomeBusinessError
}
