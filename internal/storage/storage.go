package storage

import (
	"errors"
	"fmt"

	"phprun/internal/config"
	"phprun/internal/domain"
)

// Namespaces and keys persisted by phprun
const (
	RunNamespace   = "runs"
	LastTestKey    = "lastTest"
	LastTypeKey    = "lastType"
	ActiveKey      = "active"
	PanelNamespace = "panel"
	VisibleKey     = "visible"
	OutputKey      = "output"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("store is closed")

// Backend is a durable namespaced key-value store
type Backend interface {
	// Get returns the value for key, ok is false when the key was never written.
	Get(namespace, key string) (value []byte, ok bool, err error)
	Put(namespace, key string, value []byte) error
	Close() error
}

// Store persists the last run target for "run last test"
type Store interface {
	Get(fallback func() domain.RunRecord) (domain.RunRecord, error)
	Put(record domain.RunRecord) error
	LastKind() (domain.Kind, error)
	PutLastKind(kind domain.Kind) error
}

// Open returns the backend selected by the config's store driver
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Store.Driver {
	case "json":
		path, err := cfg.GetStorePath()
		if err != nil {
			return nil, err
		}
		return NewJSONBackend(path), nil
	case "bolt":
		path, err := cfg.GetStorePath()
		if err != nil {
			return nil, err
		}
		return OpenBolt(path)
	case "mysql":
		return OpenMySQL(MySQLDSN(cfg))
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
