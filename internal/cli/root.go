// Package cli wires the services into a small cobra command tree. It is
// the non-GUI entry point: a desktop shell binds the same services
// through its own bindings instead.
package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"catalogo/internal/config"
	"catalogo/internal/objstore"
	"catalogo/internal/secret"
	"catalogo/internal/service"
	"catalogo/internal/storage"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "catalogo",
	Short:         "Manage catalogs, their rows and attached files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing config.yaml")
	rootCmd.AddCommand(catalogCmd, uploadCmd, userCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// env holds the wired process dependencies. Built once per invocation;
// the mongo client inside storage.DB stays lazy until first use.
type env struct {
	cfg *config.Config
	db  *storage.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configDir, secret.NewEnvStore())
	if err != nil {
		return nil, err
	}
	return &env{
		cfg: cfg,
		db:  storage.New(cfg.Mongo.URI, cfg.Mongo.Database),
	}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		log.Printf("[MONGO] Close: %v", err)
	}
}

func (e *env) catalogService() (*service.CatalogService, error) {
	coll, err := e.db.Collection("catalogs")
	if err != nil {
		return nil, err
	}
	store := storage.NewCatalogStore(coll)
	return service.NewCatalogService(store, e.cfg.DemoSampleRows, service.NopEmitter{}), nil
}

func (e *env) uploadService(ctx context.Context) (*service.UploadService, error) {
	cfg := service.UploadConfig{
		Bucket:  e.cfg.S3.Bucket,
		Region:  e.cfg.S3.Region,
		Enabled: e.cfg.S3.Enabled,
	}

	if !cfg.Enabled {
		return service.NewUploadService(nil, cfg), nil
	}

	client, err := objstore.NewMinio(
		objstore.AWSEndpoint(e.cfg.S3.Region),
		e.cfg.S3.AccessKey, e.cfg.S3.SecretKey, true)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, err
	}
	return service.NewUploadService(client, cfg), nil
}

func (e *env) authService() (*service.AuthService, error) {
	users, err := e.db.Collection("users")
	if err != nil {
		return nil, err
	}
	tokens, err := e.db.Collection("password_resets")
	if err != nil {
		return nil, err
	}
	store := storage.NewUserStore(users, tokens)
	return service.NewAuthService(store, stdoutMailer{}), nil
}

// stdoutMailer stands in for the real email transport, which lives
// outside this core. The token is printed so an operator can relay it.
type stdoutMailer struct{}

func (stdoutMailer) SendPasswordReset(_ context.Context, email, token string) error {
	fmt.Printf("password reset for %s: token %s\n", email, token)
	return nil
}
