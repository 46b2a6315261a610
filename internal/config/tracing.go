package config

// TracingConfig holds OTLP trace export configuration.
//
// Traces are sent to a local OpenTelemetry collector (or any agent exposing
// an OTLP HTTP receiver). See internal/observability for setup.
type TracingConfig struct {
	// Enabled turns trace export on (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint (default: localhost:4318)
	Endpoint string `mapstructure:"endpoint"`
	// Environment is the deployment environment tag (default: dev)
	Environment string `mapstructure:"environment"`
	// ServiceName is the service name reported on spans (default: healthmate)
	ServiceName string `mapstructure:"service_name"`
}
