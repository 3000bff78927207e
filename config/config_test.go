package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Simulation.Seed != 1 {
			t.Errorf("Simulation.Seed = %d, want 1", cfg.Simulation.Seed)
		}
		if cfg.Classifier.Enabled {
			t.Errorf("Classifier.Enabled = true, want false")
		}
		if cfg.Classifier.Timeout != 5*time.Second {
			t.Errorf("Classifier.Timeout = %v, want 5s", cfg.Classifier.Timeout)
		}
		if cfg.NATS.URL != "" {
			t.Errorf("NATS.URL = %s, want empty", cfg.NATS.URL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PRODUCTLENS_SERVER_PORT", "9090")
		t.Setenv("PRODUCTLENS_SERVER_ENVIRONMENT", "production")
		t.Setenv("PRODUCTLENS_CACHE_TYPE", "redis")
		t.Setenv("PRODUCTLENS_CACHE_REDIS_URL", "redis://localhost:6379")
		t.Setenv("PRODUCTLENS_CACHE_TTL", "24h")
		t.Setenv("PRODUCTLENS_RATELIMIT_PER_IP", "200")
		t.Setenv("PRODUCTLENS_SIMULATION_SEED", "42")
		t.Setenv("PRODUCTLENS_CLASSIFIER_ENABLED", "true")
		t.Setenv("PRODUCTLENS_CLASSIFIER_API_KEY", "hf-key")
		t.Setenv("PRODUCTLENS_CLASSIFIER_TIMEOUT", "2s")
		t.Setenv("PRODUCTLENS_NATS_URL", "nats://localhost:4222")
		t.Setenv("PRODUCTLENS_LOGGING_LEVEL", "warn")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if !cfg.Server.IsProduction() {
			t.Errorf("Server.IsProduction() = false, want true")
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Simulation.Seed != 42 {
			t.Errorf("Simulation.Seed = %d, want 42", cfg.Simulation.Seed)
		}
		if !cfg.Classifier.Enabled || cfg.Classifier.APIKey != "hf-key" {
			t.Errorf("Classifier = %+v, want enabled with key", cfg.Classifier)
		}
		if cfg.Classifier.Timeout != 2*time.Second {
			t.Errorf("Classifier.Timeout = %v, want 2s", cfg.Classifier.Timeout)
		}
		if cfg.NATS.URL != "nats://localhost:4222" {
			t.Errorf("NATS.URL = %s, want nats://localhost:4222", cfg.NATS.URL)
		}
		if cfg.Logging.Level != "warn" {
			t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
		}
	})

	t.Run("reads config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		content := "server:\n  port: \"7070\"\ncache:\n  ttl: 10m\n"
		if err := os.WriteFile("config.yaml", []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PRODUCTLENS_CACHE_TYPE", "invalid")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when classifier key missing", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PRODUCTLENS_CLASSIFIER_ENABLED", "true")

		_, err := Load()
		want := "invalid configuration: classifier API key is required when the classifier is enabled (set PRODUCTLENS_CLASSIFIER_API_KEY)"
		if err == nil || err.Error() != want {
			t.Errorf("Load() error = %v, want %q", err, want)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		t.Chdir(t.TempDir())

		if err := LoadEnvFile(); err != nil {
			t.Errorf("LoadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		t.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1

# TEST_COMMENTED=should_not_load
TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		for _, key := range []string{"TEST_VAR_1", "TEST_VAR_2", "TEST_COMMENTED"} {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Unsetenv(key) })
		}

		if err := LoadEnvFile(); err != nil {
			t.Fatalf("LoadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := LoadEnvFile(); err != nil {
			t.Fatalf("LoadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Cache:     CacheConfig{Type: "memory"},
			RateLimit: RateLimitConfig{PerIP: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid memory config", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "invalid cache type", mutate: func(c *Config) { c.Cache.Type = "invalid-type" }, wantErr: true},
		{
			name:   "redis with URL",
			mutate: func(c *Config) { c.Cache = CacheConfig{Type: "redis", RedisURL: "redis://localhost:6379"} },
		},
		{name: "redis without URL", mutate: func(c *Config) { c.Cache.Type = "redis" }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = 0 }, wantErr: true},
		{
			name:    "classifier without key",
			mutate:  func(c *Config) { c.Classifier = ClassifierConfig{Enabled: true, Timeout: time.Second} },
			wantErr: true,
		},
		{
			name:    "classifier without timeout",
			mutate:  func(c *Config) { c.Classifier = ClassifierConfig{Enabled: true, APIKey: "k"} },
			wantErr: true,
		},
		{
			name:   "classifier enabled",
			mutate: func(c *Config) { c.Classifier = ClassifierConfig{Enabled: true, APIKey: "k", Timeout: time.Second} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
