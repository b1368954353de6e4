package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "8080" {
		t.Errorf("APIPort = %s, want 8080", cfg.APIPort)
	}
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend = %s, want sqlite", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 10 {
		t.Errorf("RequestTimeout = %d, want 10", cfg.RequestTimeout)
	}
	if cfg.JikanBaseURL == "" || cfg.AniListURL == "" {
		t.Errorf("catalog URLs not defaulted: %+v", cfg)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("RATINGS_FILE", "/tmp/r.json")
	t.Setenv("REQUEST_TIMEOUT", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "9090" || cfg.StoreBackend != BackendFile ||
		cfg.RatingsFilePath != "/tmp/r.json" || cfg.RequestTimeout != 30 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		t.Setenv("REQUEST_TIMEOUT", v)
		if _, err := Load(); err == nil {
			t.Fatalf("expected an error for REQUEST_TIMEOUT=%q", v)
		}
	}
}
