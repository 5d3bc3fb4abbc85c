package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"phprun/internal/config"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS phprun_kv (
	namespace VARCHAR(64) NOT NULL,
	k VARCHAR(64) NOT NULL,
	v MEDIUMBLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, k)
)`
	selectQuery = "SELECT v FROM phprun_kv WHERE namespace = ? AND k = ?"
	upsertQuery = "INSERT INTO phprun_kv (namespace, k, v) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)"

	queryTimeout = 5 * time.Second
)

// MySQLBackend stores records in a key-value table, for teams sharing one state database
type MySQLBackend struct {
	db *sql.DB
}

// MySQLDSN builds the connection string from PHPRUN_MYSQL_DSN or the project's DB_* settings
func MySQLDSN(cfg *config.Config) string {
	if dsn := cfg.Getenv(config.EnvPrefix+"MYSQL_DSN", ""); dsn != "" {
		return dsn
	}

	// Get database connection info from environment or use defaults
	mc := mysql.NewConfig()
	mc.User = cfg.Getenv("DB_USERNAME", "root")
	mc.Passwd = cfg.Getenv("DB_PASSWORD", "")
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Getenv("DB_HOST", "127.0.0.1"), cfg.Getenv("DB_PORT", "3306"))
	mc.DBName = cfg.Getenv(config.EnvPrefix+"MYSQL_DATABASE", cfg.Getenv("DB_DATABASE", "phprun"))
	mc.ParseTime = true
	mc.Timeout = queryTimeout
	return mc.FormatDSN()
}

// OpenMySQL connects and makes sure the key-value table exists
func OpenMySQL(dsn string) (*MySQLBackend, error) {
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("create phprun_kv table: %w", err)
	}
	return &MySQLBackend{db: db}, nil
}

// Get reads key from namespace
func (m *MySQLBackend) Get(namespace, key string) ([]byte, bool, error) {
	if m.db == nil {
		return nil, false, ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var value []byte
	err := m.db.QueryRowContext(ctx, selectQuery, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Put upserts key into namespace
func (m *MySQLBackend) Put(namespace, key string, value []byte) error {
	if m.db == nil {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := m.db.ExecContext(ctx, upsertQuery, namespace, key, value); err != nil {
		return fmt.Errorf("write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Close closes the connection pool
func (m *MySQLBackend) Close() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
