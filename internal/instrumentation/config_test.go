package instrumentation

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	for _, key := range []string{
		"OTEL_SERVICE_NAME", "INSTRUMENTATION_ENABLED", "METRICS_EXPORTER",
		"TRACING_EXPORTER", "OTEL_TRACES_SAMPLER_ARG", "AUDIT_LOGGING_INCLUDE_ARGUMENTS",
	} {
		t.Setenv(key, "")
	}

	config := DefaultConfig()

	if config.ServiceName != "taskmanager" {
		t.Errorf("expected ServiceName 'taskmanager', got %q", config.ServiceName)
	}
	if !config.Enabled {
		t.Error("expected Enabled to be true by default")
	}
	if config.MetricsExporter != ExporterPrometheus || config.TracingExporter != ExporterNone {
		t.Errorf("expected prometheus/none exporters, got %q/%q", config.MetricsExporter, config.TracingExporter)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("expected TraceSamplingRate 0.1, got %f", config.TraceSamplingRate)
	}
	if !config.AuditLogging.Enabled || config.AuditLogging.IncludeArguments {
		t.Errorf("expected audit logging on without arguments, got %+v", config.AuditLogging)
	}
	if config.Deployment != (Deployment{}) {
		t.Errorf("expected an empty deployment until a command sets it, got %+v", config.Deployment)
	}
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "tasks-edge")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "not-a-number")
	t.Setenv("AUDIT_LOGGING_INCLUDE_ARGUMENTS", "true")

	config := DefaultConfig()

	if config.ServiceName != "tasks-edge" {
		t.Errorf("expected ServiceName 'tasks-edge', got %q", config.ServiceName)
	}
	if config.Enabled {
		t.Error("expected Enabled to be false")
	}
	if config.MetricsExporter != ExporterStdout || config.TracingExporter != ExporterOTLP {
		t.Errorf("expected stdout/otlp exporters, got %q/%q", config.MetricsExporter, config.TracingExporter)
	}
	if config.OTLPEndpoint != "collector:4318" {
		t.Errorf("expected OTLP endpoint from env, got %q", config.OTLPEndpoint)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("expected unparsable sampling rate to fall back to 0.1, got %f", config.TraceSamplingRate)
	}
	if !config.AuditLogging.IncludeArguments {
		t.Error("expected audit arguments to be included")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		errContains string
	}{
		{
			name:   "rest api with prometheus",
			config: Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, Deployment: LocalAPI()},
		},
		{
			name: "mcp against remote api with otlp tracing",
			config: Config{
				MetricsExporter: ExporterPrometheus,
				TracingExporter: ExporterOTLP,
				OTLPEndpoint:    "localhost:4318",
				Deployment:      MCPDeployment("stdio", "http://localhost:8000"),
			},
		},
		{
			name:        "sampling rate below zero",
			config:      Config{TraceSamplingRate: -0.5},
			errContains: "sampling rate",
		},
		{
			name:        "sampling rate above one",
			config:      Config{TraceSamplingRate: 1.5},
			errContains: "sampling rate",
		},
		{
			name:        "unknown metrics exporter",
			config:      Config{MetricsExporter: "statsd"},
			errContains: "invalid metrics exporter",
		},
		{
			name:        "unknown tracing exporter",
			config:      Config{TracingExporter: "jaeger"},
			errContains: "invalid tracing exporter",
		},
		{
			name:        "otlp tracing without endpoint",
			config:      Config{TracingExporter: ExporterOTLP},
			errContains: "OTLP endpoint is required",
		},
		{
			name:        "otlp metrics without endpoint",
			config:      Config{MetricsExporter: ExporterOTLP},
			errContains: "OTLP endpoint is required",
		},
		{
			name:        "remote backend without api url",
			config:      Config{Deployment: Deployment{Component: ComponentMCP, Backend: BackendRemote}},
			errContains: "invalid deployment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TASKS_TEST_STRING", "value")
	t.Setenv("TASKS_TEST_BOOL", "true")
	t.Setenv("TASKS_TEST_BOOL_BAD", "yes please")
	t.Setenv("TASKS_TEST_FLOAT", "0.75")
	t.Setenv("TASKS_TEST_FLOAT_BAD", "three quarters")

	if v := getEnvOrDefault("TASKS_TEST_STRING", "default"); v != "value" {
		t.Errorf("expected 'value', got %q", v)
	}
	if v := getEnvOrDefault("TASKS_TEST_UNSET", "default"); v != "default" {
		t.Errorf("expected 'default', got %q", v)
	}
	if !getEnvBoolOrDefault("TASKS_TEST_BOOL", false) {
		t.Error("expected true")
	}
	if !getEnvBoolOrDefault("TASKS_TEST_BOOL_BAD", true) {
		t.Error("expected default for an unparsable bool")
	}
	if v := getEnvFloatOrDefault("TASKS_TEST_FLOAT", 0.5); v != 0.75 {
		t.Errorf("expected 0.75, got %f", v)
	}
	if v := getEnvFloatOrDefault("TASKS_TEST_FLOAT_BAD", 0.5); v != 0.5 {
		t.Errorf("expected default for an unparsable float, got %f", v)
	}
}
