package database

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies all pending schema migrations from migrationsPath
// (e.g. "file://migrations").  An up-to-date schema is not an error.
func Migrate(migrationsPath, user, pass, host, port, name string) error {
	m, err := migrate.New(migrationsPath, connString(user, pass, host, port, name))
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}

func connString(user, pass, host, port, name string) string {
	auth := url.QueryEscape(user)
	if pass != "" {
		auth += ":" + url.QueryEscape(pass)
	}
	return fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}
