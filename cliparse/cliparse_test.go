// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("ORGANIZER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected default backend memory, got %q", cfg.Backend)
	}
	if cfg.MaxImageWidth != 800 {
		t.Errorf("expected default max width 800, got %d", cfg.MaxImageWidth)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-organizer-salt", "s1", "-max-width", "640"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.MaxImageWidth != 640 {
		t.Errorf("expected max width 640, got %d", cfg.MaxImageWidth)
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when ORGANIZER_KEY_SALT is missing")
	}
}

func TestParseFlags_BackendRequirements(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"dir backend without image dir", []string{"-b", "dir", "-organizer-salt", "s"}, true},
		{"dir backend with image dir", []string{"-b", "dir", "-i", "/tmp/imgs", "-organizer-salt", "s"}, false},
		{"db backend without url", []string{"-b", "db", "-organizer-salt", "s"}, true},
		{"db backend with url", []string{"-b", "db", "-d", "file:test.db", "-organizer-salt", "s"}, false},
		{"unknown backend", []string{"-b", "carrier-pigeon", "-organizer-salt", "s"}, true},
		{"s3 backend without endpoint", []string{"-b", "s3", "-organizer-salt", "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
