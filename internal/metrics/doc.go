// Package metrics records what visitors do with the page.
//
// Components receive a Recorder and never check for nil: NoopRecorder is
// the default and PrometheusRecorder is swapped in when metrics are enabled.
package metrics
