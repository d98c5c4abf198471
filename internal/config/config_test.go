package config

import (
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Errorf("APIPort = %q, want 8080", cfg.APIPort)
	}
	if cfg.WorkerPort != "8082" {
		t.Errorf("WorkerPort = %q, want 8082", cfg.WorkerPort)
	}
	if cfg.Progress.Backend != BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Progress.Backend)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.RabbitMQURL != "" || cfg.CatalogAuditCron != "" {
		t.Error("events and audit must be disabled by default")
	}
	if got, want := cfg.FlowsDir(), filepath.Join("data", "flows"); got != want {
		t.Errorf("FlowsDir() = %q, want %q", got, want)
	}
	if got, want := cfg.StepsDir(), filepath.Join("data", "steps"); got != want {
		t.Errorf("StepsDir() = %q, want %q", got, want)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"API_PORT":             "9000",
		"DATA_DIR":             "/srv/data",
		"PROGRESS_BACKEND":     "Redis",
		"REDIS_DB":             "3",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173, https://app.example.com ,",
		"DB_URL":               "postgres://x",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.FlowsDir() != filepath.Join("/srv/data", "flows") {
		t.Errorf("FlowsDir() = %q", cfg.FlowsDir())
	}
	if cfg.Progress.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Progress.Backend)
	}
	if cfg.Progress.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.Progress.RedisDB)
	}
	if cfg.Progress.DBURL != "postgres://x" {
		t.Errorf("Progress.DBURL = %q", cfg.Progress.DBURL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want 2 origins", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"PROGRESS_BACKEND": "cassandra"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
