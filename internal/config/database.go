package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"DB_PASS" env-default:"postgres"`
	Database      string `yaml:"database" env:"DB_NAME" env-default:"sharenote"`
	SSLMode       string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MinConn       int    `yaml:"min_conn" env:"DB_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"DB_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR" env-default:"migrations"`
}

// GetDSN возвращает строку подключения к PostgreSQL в формате URL.
// Используется и пулом pgx, и golang-migrate.
func (p *PostgresConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(p.SSLMode)),
	}
	return u.String()
}
