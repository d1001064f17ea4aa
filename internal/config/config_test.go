package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_DATABASE", "denote")
	t.Setenv("DB_USER", "denote")
	t.Setenv("GENERATE_URL", "https://generativelanguage.googleapis.com/v1beta")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %q", cfg.Port)
	}
	if cfg.DBType != "mysql" {
		t.Errorf("Expected default db type mysql, got %q", cfg.DBType)
	}
	if cfg.ReportHour != 20 {
		t.Errorf("Expected default report hour 20, got %d", cfg.ReportHour)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GENERATE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when GENERATE_URL is missing")
	}
}

func TestLoadSQLiteSkipsUser(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_USER", "")

	if _, err := Load(); err != nil {
		t.Errorf("sqlite should not require DB_USER: %v", err)
	}
}

func TestLoadReportHourRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REPORT_HOUR", "24")

	if _, err := Load(); err == nil {
		t.Error("Expected error for out-of-range REPORT_HOUR")
	}
}
