package internal

import (
	"bytes"
	"strings"
)

const sniffWindow = 512

var htmlMarkers = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<body"),
	[]byte("<title"),
	[]byte("<h1"),
}

// LooksLikeHTML reports whether a response is an HTML document rather than an
// API payload, by content type or by sniffing the leading bytes of the body.
// Reverse proxies and load balancers serve HTML error pages during outages,
// including on status codes that would otherwise be meaningful (a 401 with an
// HTML body is an edge failure, not an auth rejection).
func LooksLikeHTML(contentType string, body []byte) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml") {
		return true
	}
	if len(body) == 0 {
		return false
	}

	window := body
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	window = bytes.ToLower(bytes.TrimLeft(window, " \t\r\n\uFEFF"))

	for _, marker := range htmlMarkers {
		if bytes.HasPrefix(window, marker) {
			return true
		}
	}
	return false
}
