package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DefaultTable is the table used by the mysql backend.
const DefaultTable = "kv_store"

const defaultMySQLTimeout = 5 * time.Second

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// MySQLKV stores keys as rows of a two-column table.
type MySQLKV struct {
	db      *sql.DB
	table   string
	addr    string
	timeout time.Duration
}

// OpenMySQL connects to dsn, verifies the connection and creates the table
// if needed.
func OpenMySQL(dsn, table string, timeout time.Duration) (*MySQLKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is empty")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid mysql table name %q", table)
	}
	if timeout <= 0 {
		timeout = defaultMySQLTimeout
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	m := &MySQLKV{db: db, table: table, addr: cfg.Addr, timeout: timeout}

	ctx, cancel := m.context()
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if err := m.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func (m *MySQLKV) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    k VARCHAR(191) NOT NULL PRIMARY KEY,
    v MEDIUMTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`, m.table)
	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", m.table, err)
	}
	return nil
}

func (m *MySQLKV) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// Get returns the value stored under key.
func (m *MySQLKV) Get(key string) (string, bool, error) {
	ctx, cancel := m.context()
	defer cancel()

	var value string
	query := fmt.Sprintf("SELECT v FROM %s WHERE k = ?", m.table)
	err := m.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (m *MySQLKV) Set(key, value string) error {
	ctx, cancel := m.context()
	defer cancel()

	stmt := fmt.Sprintf("INSERT INTO %s (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", m.table)
	if _, err := m.db.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (m *MySQLKV) Close() error {
	return m.db.Close()
}

// Describe returns the server address and table.
func (m *MySQLKV) Describe() string {
	return fmt.Sprintf("mysql %s table %s", m.addr, m.table)
}
