// Package runid mints the per-invocation identifier threaded through
// logging (internal/obslog) and the debug server's /healthz status
// (internal/server). Metrics carry no run id label.
package runid

import "github.com/google/uuid"

// New returns a fresh run identifier.
func New() string {
	return uuid.NewString()
}
