// Package app contains the core application logic. It defines the main App
// struct, resolves its configuration from built-in defaults, an optional
// settings file and command-line overrides, and drives one shader build from
// manifest loading to exit status, decoupled from any specific entrypoint.
package app
