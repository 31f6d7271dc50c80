// Package config defines the global configuration structure for the aquacheck
// service. Configuration is loaded once at process initialization and is
// immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format causes startup to fail
// immediately (fail fast).
package config

import "time"

// Config is the top-level configuration struct for the aquacheck service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"aquacheck-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server  ServerConfig
	Catalog CatalogConfig
	Report  ReportConfig
}

// ServerConfig holds HTTP server tuning parameters.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// CatalogConfig locates the standards database. The file is read exactly
// once, at startup; a bad catalog is a deployment problem, so there is no
// reload path.
type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:"standards.json" validate:"required"`
}

// ReportConfig holds presentation settings for generated PDF reports.
type ReportConfig struct {
	Title      string `envconfig:"REPORT_TITLE" default:"Comprehensive Water Quality Report"`
	FooterNote string `envconfig:"REPORT_FOOTER" default:"Report generated by the AquaCheck Compliance Suite  |  Always verify against the latest published standards."`

	// MaxBatchSize caps the number of samples accepted per analysis request.
	MaxBatchSize int `envconfig:"REPORT_MAX_BATCH" default:"100" validate:"min=1"`
}
