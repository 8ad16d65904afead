// Package lifecycle holds values shared by components that hook into the application lifecycle.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks that talk to external systems.
const DefaultTimeout = 10 * time.Second
