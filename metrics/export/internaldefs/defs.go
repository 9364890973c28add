package internaldefs

import (
	gateAuth "github.com/gatentry/gateAuth"
)

// CounterDef defines a public type used by gateAuth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   gateAuth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by gateAuth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   gateAuth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session core.
var CounterDefs = []CounterDef{
	{ID: gateAuth.MetricBootstrapStarted, Name: "gateauth_bootstrap_started_total", Help: "Guest identity bootstrap attempts."},
	{ID: gateAuth.MetricBootstrapSuccess, Name: "gateauth_bootstrap_success_total", Help: "Successful guest identity bootstraps."},
	{ID: gateAuth.MetricBootstrapFailure, Name: "gateauth_bootstrap_failure_total", Help: "Failed guest identity bootstraps (non-outage)."},
	{ID: gateAuth.MetricBootstrapSuppressed, Name: "gateauth_bootstrap_suppressed_total", Help: "Bootstrap invocations suppressed by the in-flight guard."},
	{ID: gateAuth.MetricOTPSent, Name: "gateauth_otp_sent_total", Help: "OTP send requests accepted by the backend."},
	{ID: gateAuth.MetricOTPSendFailure, Name: "gateauth_otp_send_failure_total", Help: "Failed OTP send requests."},
	{ID: gateAuth.MetricVerifySuccess, Name: "gateauth_verify_success_total", Help: "Successful OTP verifications."},
	{ID: gateAuth.MetricVerifyFailure, Name: "gateauth_verify_failure_total", Help: "Failed OTP verifications."},
	{ID: gateAuth.MetricRefreshSuccess, Name: "gateauth_refresh_success_total", Help: "Successful token refreshes."},
	{ID: gateAuth.MetricRefreshFailure, Name: "gateauth_refresh_failure_total", Help: "Token refreshes that ended the session."},
	{ID: gateAuth.MetricRefreshShared, Name: "gateauth_refresh_shared_total", Help: "Callers that joined an in-flight refresh instead of starting one."},
	{ID: gateAuth.MetricRefreshOutage, Name: "gateauth_refresh_outage_total", Help: "Refreshes aborted by a server outage (session preserved)."},
	{ID: gateAuth.MetricRefreshProactive, Name: "gateauth_refresh_proactive_total", Help: "Refreshes triggered by the expiry leeway before a request."},
	{ID: gateAuth.MetricLogout, Name: "gateauth_logout_total", Help: "Performed logouts."},
	{ID: gateAuth.MetricLogoutDeduped, Name: "gateauth_logout_deduped_total", Help: "Logout triggers absorbed by the idempotence guard."},
	{ID: gateAuth.MetricUnauthorizedSuppressed, Name: "gateauth_unauthorized_suppressed_total", Help: "Session-died notifications suppressed during an outage."},
	{ID: gateAuth.MetricGatewayRetry, Name: "gateauth_gateway_retry_total", Help: "Requests retried once after a refresh."},
	{ID: gateAuth.MetricGatewayUnauthorized, Name: "gateauth_gateway_unauthorized_total", Help: "Requests that ended unauthorized."},
	{ID: gateAuth.MetricGatewayOutage, Name: "gateauth_gateway_outage_total", Help: "Requests classified as server unavailable."},
	{ID: gateAuth.MetricGatewayRequestError, Name: "gateauth_gateway_request_error_total", Help: "Requests that ended in ordinary business errors."},
}

// HistogramDefs is an exported constant or variable used by the session core.
var HistogramDefs = []HistogramDef{
	{ID: gateAuth.MetricSendLatency, Name: "gateauth_send_latency_seconds", Help: "Gateway send latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session core.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session core.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
