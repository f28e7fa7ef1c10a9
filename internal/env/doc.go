// Package env resolves configuration keys across two ordered environment
// sources: the process environment, available only when running as a server
// or CLI, and a build-injected environment embedded at link time or shipped
// alongside the binary. Empty values are treated as absent so resolution falls
// through to the next source and finally to the caller's default.
package env
