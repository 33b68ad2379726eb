// Package config resolves the process configuration once at startup.
// Values come from an optional config.yaml plus CATALOGO_* environment
// overrides; every key has a documented default so a bare checkout runs
// against a local database with uploads simulated.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"catalogo/internal/secret"
)

// Config is the resolved process configuration. Read-only after Load.
type Config struct {
	Mongo MongoConfig
	S3    S3Config

	// DemoSampleRows lets the UI show placeholder rows in empty
	// catalogs. Off by default: the samples are display-only and must
	// never reach storage without this explicit opt-in.
	DemoSampleRows bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Enabled   bool // real uploads; off means simulation mode
}

const (
	defaultMongoURI = "mongodb://localhost:27017"
	defaultDatabase = "catalogo"
	defaultRegion   = "eu-central-1"
	defaultBucket   = "catalogo-uploads"
)

// Load reads configuration from configDir (optional) and the
// environment. Secrets missing from both are looked up in secrets.
func Load(configDir string, secrets secret.Store) (*Config, error) {
	v := viper.New()
	v.SetDefault("mongo.uri", defaultMongoURI)
	v.SetDefault("mongo.database", defaultDatabase)
	v.SetDefault("s3.region", defaultRegion)
	v.SetDefault("s3.bucket", defaultBucket)
	v.SetDefault("s3.enabled", false)
	v.SetDefault("demo_sample_rows", false)

	v.SetEnvPrefix("CATALOGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// missing config.yaml is fine; defaults and env apply
		}
	}

	cfg := &Config{
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		S3: S3Config{
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
			Region:    v.GetString("s3.region"),
			Bucket:    v.GetString("s3.bucket"),
			Enabled:   v.GetBool("s3.enabled"),
		},
		DemoSampleRows: v.GetBool("demo_sample_rows"),
	}

	if cfg.S3.SecretKey == "" && secrets != nil {
		if val, err := secrets.Get("s3.secret_key"); err == nil && len(val) > 0 {
			cfg.S3.SecretKey = string(val)
		}
	}

	return cfg, nil
}
