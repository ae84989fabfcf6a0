package database

// Config holds SQLite storage settings shared across bots.
type Config struct {
	Path           string `yaml:"path" envconfig:"SQLITE_PATH"`
	BusyTimeoutMS  int    `yaml:"busy_timeout_ms" envconfig:"DB_BUSY_TIMEOUT_MS"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// withDefaults fills unset fields with values suitable for a small single-process bot.
func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = "data/bot.db"
	}
	if c.BusyTimeoutMS <= 0 {
		c.BusyTimeoutMS = 3000
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = 4
	}
	return c
}
