// Package license classifies license identifiers against an embedded SPDX
// registry.
//
// The registry data is embedded at build time with go:embed so it is
// available in all distributions; it carries the SPDX license-list field
// names (licenseId, isOsiApproved).
package license

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed spdx_licenses.json
var registryJSON []byte

// Registry looks up SPDX license identifiers and their OSI-approval flag.
type Registry struct {
	osiApproved map[string]bool
}

type registryFile struct {
	Licenses []struct {
		LicenseID   string `json:"licenseId"`
		OSIApproved bool   `json:"isOsiApproved"`
	} `json:"licenses"`
}

// NewRegistry parses the embedded SPDX registry.
func NewRegistry() (*Registry, error) {
	var file registryFile
	if err := json.Unmarshal(registryJSON, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded license registry: %w", err)
	}

	r := &Registry{osiApproved: make(map[string]bool, len(file.Licenses))}
	for _, l := range file.Licenses {
		r.osiApproved[l.LicenseID] = l.OSIApproved
	}
	return r, nil
}

// OSIApproved reports whether the given license token is a known SPDX
// identifier flagged as OSI-approved. Empty or unrecognized tokens return
// false, never an error.
func (r *Registry) OSIApproved(token string) bool {
	return r.osiApproved[token]
}

// Token returns the first space-delimited token of a license expression.
// Compound SPDX expressions ("MIT OR Apache-2.0") are deliberately truncated
// to their first operand for OSI-approval purposes.
func Token(expression string) string {
	token, _, _ := strings.Cut(expression, " ")
	return token
}
