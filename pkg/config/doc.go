// Package config provides configuration management for rowmark.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("rowmark.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("rowmark.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ROWMARK_SECTION_FIELD.
// For example:
//
//   - ROWMARK_PARSER_MAX_DEPTH overrides parser.max_depth
//   - ROWMARK_CONVERT_FAIL_FAST overrides convert.fail_fast
//   - ROWMARK_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// The CLI stores the loaded configuration with Initialize and reads it back
// with GetConfig. Library code should take a *Config explicitly.
package config
