// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses a settings file, evaluates its expressions against an
// `env` variable and a small function library, and translates the result into
// the format-agnostic config.Settings model.
//
// Example:
//
//	source_dir     = "assets/shaders"
//	compiler       = "${lookup(env, "VULKAN_SDK", "/usr")}/bin/glslc"
//	compiler_args  = ["-O", "--target-env=vulkan1.3"]
//	workers        = 4
//	failure_policy = "exit-code"
//	timeout        = "30s"
package hcl
