// Package config exposes the API settings consumed by front-end HTTP clients
// (APIConfig, Settings) and the configuration of the runtime-config service
// itself (Config). Both read through an env.Resolver, so the process
// environment wins over the build-injected environment, which wins over
// defaults.
package config
