// Package config loads the application configuration from config.yml,
// overlays deploy-variable settings from the environment (with .env
// support), applies defaults, and validates the result.
package config
