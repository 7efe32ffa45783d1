// Package config defines the format-agnostic model of a network definition:
// an ordered list of operator declarations plus the execution strategy and
// worker count. Frontends (HCL, YAML) translate their own schemas into this
// model; the builder and executors consume it read-only.
package config
