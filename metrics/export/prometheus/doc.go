// Package prometheus provides Prometheus collectors for gateAuth metrics.
//
// [NewPrometheusExporter] accepts a [gateAuth.Manager] and exposes an [http.Handler]
// that renders all gateAuth counters and histograms in Prometheus text exposition
// format. Counter names are prefixed gateauth_*_total; the single histogram is
// gateauth_send_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate manager state.
package prometheus
