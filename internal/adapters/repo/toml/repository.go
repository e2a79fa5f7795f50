package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	DefaultsPathKey    = "defaults.path"
	defaultsFileMode   = 0o600
	defaultsDirMode    = 0o700
	defaultsConfigDir  = ".parceltrack"
	defaultsConfigFile = "defaults.toml"
	tempFilePattern    = ".defaults-*.toml.tmp"
)

// Repository persists the per-scope default carriers. A missing file or a
// missing scope entry falls back to the built-in table.
type Repository struct {
	path     string
	fallback domain.ScopeDefaults
	mu       *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ScopeDefaultsRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if strings.TrimSpace(cfg.GetString(DefaultsPathKey)) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(DefaultsPathKey, filepath.Join(homeDir, defaultsConfigDir, defaultsConfigFile))
	}

	path := cfg.GetString(DefaultsPathKey)
	if path == "" {
		return nil, errors.New("defaults path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve defaults path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{
		path:     absPath,
		fallback: domain.BuiltinScopeDefaults(),
		mu:       lockForPath(absPath),
	}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (domain.ScopeDefaults, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScopeDefaults{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.ScopeDefaults{}, err
	}

	return fromSchema(file.Defaults, r.fallback), nil
}

func (r *Repository) Save(ctx context.Context, defaults domain.ScopeDefaults) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.Defaults = toSchema(defaults)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read defaults file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode defaults file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), defaultsDirMode); err != nil {
		return fmt.Errorf("create defaults directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode defaults file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp defaults file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp defaults file: %w", err)
	}

	if err := tempFile.Chmod(defaultsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp defaults file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp defaults file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace defaults file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(defaults domain.ScopeDefaults) defaultsTable {
	return defaultsTable{
		Domestic:      toCarrierSchema(defaults.Domestic),
		International: toCarrierSchema(defaults.International),
	}
}

func toCarrierSchema(carrier domain.Carrier) *carrierSchema {
	if carrier.Code == "" {
		return nil
	}

	return &carrierSchema{Code: carrier.Code, Name: carrier.Name}
}

func fromSchema(table defaultsTable, fallback domain.ScopeDefaults) domain.ScopeDefaults {
	defaults := fallback
	if c := table.Domestic; c != nil && strings.TrimSpace(c.Code) != "" {
		defaults.Domestic = domain.Carrier{Code: strings.TrimSpace(c.Code), Name: c.Name}
	}
	if c := table.International; c != nil && strings.TrimSpace(c.Code) != "" {
		defaults.International = domain.Carrier{Code: strings.TrimSpace(c.Code), Name: c.Name, International: true}
	}

	return defaults
}
