// Package metrics records build metrics behind a Recorder interface.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional. PrometheusRecorder backs the interface with client_golang
// collectors; a one-shot build exports them with WriteTextfile for the
// node-exporter textfile collector instead of serving HTTP.
package metrics
