// Package configs provides the embedded configuration template for the
// indexer.
//
// The template is embedded at build time using Go's //go:embed directive so
// it is available in all distributions (source builds and binary releases).
package configs

import _ "embed"

// ExampleConfig is the annotated configuration template, printed by
// `forgelode-indexer config example`.
//
//go:embed indexer.example.yaml
var ExampleConfig string
