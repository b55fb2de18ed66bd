// Package compiler runs an external GLSL-to-SPIR-V compiler such as glslc and
// decides, according to a failure policy, whether a finished run failed.
package compiler
