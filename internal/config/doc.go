// Package config defines the format-agnostic session model: which component
// instances to create and which calls to make against them.
//
// Concrete loaders, such as the HCL one, live in separate packages and
// produce a Model whose values are already evaluated into cty terms.
package config
