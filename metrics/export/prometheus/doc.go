// Package prometheus provides Prometheus collectors for stayauth metrics.
//
// [NewPrometheusExporter] accepts a [stayauth.Engine] and exposes an [http.Handler]
// that renders all stayauth counters and histograms in Prometheus text exposition format.
// Counter names are prefixed stayauth_*_total; the single histogram is
// stayauth_login_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
