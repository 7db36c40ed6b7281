// Package config provides the configuration of the salesqueen CLI.
// Values come from defaults, an optional YAML file, SALESQUEEN_*
// environment variables and finally command-line flags, in that order.
package config
