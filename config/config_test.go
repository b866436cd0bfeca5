package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	configContent := `{
		"app_name": "TestApp",
		"listen_ip": "127.0.0.1",
		"listen_port": 9090,
		"session_key": "test-session-key",
		"database_path": "./test.db",
		"session_dir": "./test-sessions",
		"templates_dir": "views",
		"enable_captcha": true
	}`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temporary file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temporary file: %v", err)
	}

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.AppName != "TestApp" {
		t.Errorf("Expected AppName 'TestApp', got '%s'", AppConfig.AppName)
	}
	if AppConfig.ListenIP != "127.0.0.1" {
		t.Errorf("Expected ListenIP '127.0.0.1', got '%s'", AppConfig.ListenIP)
	}
	if AppConfig.ListenPort != 9090 {
		t.Errorf("Expected ListenPort 9090, got %d", AppConfig.ListenPort)
	}
	if AppConfig.SessionKey != "test-session-key" {
		t.Errorf("Expected SessionKey 'test-session-key', got '%s'", AppConfig.SessionKey)
	}
	if AppConfig.TemplatesDir != "views" {
		t.Errorf("Expected TemplatesDir 'views', got '%s'", AppConfig.TemplatesDir)
	}
	if !AppConfig.EnableCaptcha {
		t.Error("Expected EnableCaptcha true")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "config.json")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(`{"app_name": "Defaults", "session_key": "k"}`))
	tmpfile.Close()

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.DatabasePath == "" {
		t.Error("Expected a default database path")
	}
	if AppConfig.SessionDir == "" {
		t.Error("Expected a default session dir")
	}
	if AppConfig.TemplatesDir != "templates" {
		t.Errorf("Expected default templates dir, got '%s'", AppConfig.TemplatesDir)
	}
}

func TestLoadConfigGeneratesSessionKey(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "config.json")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(`{"session_key": "CHANGE_ME_IN_PRODUCTION"}`))
	tmpfile.Close()

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		t.Errorf("Expected a generated session key, got '%s'", AppConfig.SessionKey)
	}
	if len(AppConfig.SessionKey) != 64 {
		t.Errorf("Expected a 32-byte hex key, got length %d", len(AppConfig.SessionKey))
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "config.json")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(`{"session_key": "from-file"}`))
	tmpfile.Close()

	os.Setenv("SNIPPETAPP_SESSION_KEY", "from-env")
	defer os.Unsetenv("SNIPPETAPP_SESSION_KEY")

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if AppConfig.SessionKey != "from-env" {
		t.Errorf("Expected the environment to override the file, got '%s'", AppConfig.SessionKey)
	}
}

func TestLoadConfigInvalidPath(t *testing.T) {
	if err := LoadConfig("non-existent-path.json"); err == nil {
		t.Error("LoadConfig with non-existent path should have failed")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "invalid_config.json")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(`{ "invalid": json }`))
	tmpfile.Close()

	if err := LoadConfig(tmpfile.Name()); err == nil {
		t.Error("LoadConfig with invalid JSON should have failed")
	}
}
