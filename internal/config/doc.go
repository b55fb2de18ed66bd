// Package config defines the format-agnostic build settings model and the
// Loader interface for reading it from a settings file.
//
// Every field of Settings is optional; nil means "not set in the file", so
// the application can layer a file between its built-in defaults and the
// command line. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
