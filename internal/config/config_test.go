package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"catalogo/internal/config"
	"catalogo/internal/secret"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("mongo uri = %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "catalogo" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.S3.Region != "eu-central-1" {
		t.Errorf("region = %q", cfg.S3.Region)
	}
	if cfg.S3.Enabled {
		t.Error("uploads enabled by default, want simulation")
	}
	if cfg.DemoSampleRows {
		t.Error("demo rows on by default, want opt-in")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOGO_MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("CATALOGO_S3_ENABLED", "true")

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("mongo uri = %q", cfg.Mongo.URI)
	}
	if !cfg.S3.Enabled {
		t.Error("s3.enabled override ignored")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "mongo:\n  database: archive\ns3:\n  bucket: archive-files\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mongo.Database != "archive" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.S3.Bucket != "archive-files" {
		t.Errorf("bucket = %q", cfg.S3.Bucket)
	}
}

func TestLoadSecretFallback(t *testing.T) {
	secrets := secret.NewMemStore()
	secrets.Set("s3.secret_key", []byte("from-store"))

	cfg, err := config.Load("", secrets)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.S3.SecretKey != "from-store" {
		t.Errorf("secret key = %q, want fallback from store", cfg.S3.SecretKey)
	}
}
