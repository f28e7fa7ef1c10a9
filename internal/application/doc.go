// Package application wires the environment resolver, API settings, HTTP
// handlers and server together so that the main package only parses flags
// and orchestrates startup and shutdown.
package application
