// Package config provides the YAML configuration of the durable log tooling together with sane defaults.
package config
