// Package secret provides a pluggable store for sensitive values such as
// object-store credentials. The default implementation reads environment
// variables; a platform keychain or vault can be swapped in behind the
// same interface.
package secret

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Store is a pluggable interface for sensitive values.
type Store interface {
	// Set stores a secret value under the given key.
	Set(key string, value []byte) error

	// Get retrieves the secret value for the given key.
	// Returns empty slice and nil error if key does not exist.
	Get(key string) ([]byte, error)

	// Delete removes the secret for the given key.
	Delete(key string) error
}

// EnvStore reads secrets from CATALOGO_SECRET_* environment variables.
// The key "s3.secret_key" maps to CATALOGO_SECRET_S3_SECRET_KEY.
type EnvStore struct{}

func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

func envName(key string) string {
	name := strings.ToUpper(key)
	name = strings.NewReplacer(".", "_", "-", "_").Replace(name)
	return "CATALOGO_SECRET_" + name
}

func (e *EnvStore) Get(key string) ([]byte, error) {
	val := os.Getenv(envName(key))
	if val == "" {
		return nil, nil
	}
	return []byte(val), nil
}

func (e *EnvStore) Set(key string, _ []byte) error {
	return fmt.Errorf("env secret store is read-only (set %s instead)", envName(key))
}

func (e *EnvStore) Delete(key string) error {
	return fmt.Errorf("env secret store is read-only (unset %s instead)", envName(key))
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string][]byte{}}
}

func (m *MemStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.values[key]...), nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
