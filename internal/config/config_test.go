package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		defaultVal string
		envValue   string
		want       string
	}{
		{
			name:       "environment variable exists",
			key:        "TEST_KEY_EXISTS",
			defaultVal: "default",
			envValue:   "custom_value",
			want:       "custom_value",
		},
		{
			name:       "environment variable does not exist",
			key:        "TEST_KEY_NOT_EXISTS",
			defaultVal: "default_value",
			envValue:   "",
			want:       "default_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			if got := getEnv(tt.key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT_VALID", "42")
	defer os.Unsetenv("TEST_INT_VALID")
	if got := getEnvAsInt("TEST_INT_VALID", 0); got != 42 {
		t.Errorf("getEnvAsInt() = %d, want 42", got)
	}

	os.Setenv("TEST_INT_INVALID", "not-a-number")
	defer os.Unsetenv("TEST_INT_INVALID")
	if got := getEnvAsInt("TEST_INT_INVALID", 7); got != 7 {
		t.Errorf("getEnvAsInt() with invalid value = %d, want default 7", got)
	}

	if got := getEnvAsInt("TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("getEnvAsInt() with missing key = %d, want default 3", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION_VALID", "45s")
	defer os.Unsetenv("TEST_DURATION_VALID")
	if got := getEnvAsDuration("TEST_DURATION_VALID", time.Second); got != 45*time.Second {
		t.Errorf("getEnvAsDuration() = %v, want 45s", got)
	}

	os.Setenv("TEST_DURATION_INVALID", "soon")
	defer os.Unsetenv("TEST_DURATION_INVALID")
	if got := getEnvAsDuration("TEST_DURATION_INVALID", time.Minute); got != time.Minute {
		t.Errorf("getEnvAsDuration() with invalid value = %v, want default", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr == "" {
		t.Error("Addr default is empty")
	}
	if cfg.StoreBackend != "file" {
		t.Errorf("StoreBackend = %q, want file", cfg.StoreBackend)
	}
	if cfg.InputTimeout != 30*time.Second {
		t.Errorf("InputTimeout = %v, want 30s", cfg.InputTimeout)
	}
}
