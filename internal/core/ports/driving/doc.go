// Package driving defines the services the CLI calls: batch and lookup
// runs, run history and settings. Implementations live in
// internal/core/services.
package driving
