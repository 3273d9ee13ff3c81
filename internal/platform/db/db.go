package db

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const driverName = "mysql"

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Config struct {
	Mode string         `yaml:"mode"`
	Addr string         `yaml:"addr"`
	DB   DatabaseConfig `yaml:"database"`
}

// LoadConfig reads the YAML config file and then applies environment
// overrides. A .env file next to the binary is honored if present, so
// credentials can stay out of the config file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnv(&cfg)

	if cfg.Mode == "" {
		cfg.Mode = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9090"
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SHAREIT_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("SHAREIT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SHAREIT_DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("SHAREIT_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.DB.Port = p
		}
	}
	if v := os.Getenv("SHAREIT_DB_USER"); v != "" {
		cfg.DB.Username = v
	}
	if v := os.Getenv("SHAREIT_DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("SHAREIT_DB_NAME"); v != "" {
		cfg.DB.DBName = v
	}
}

func Connect(c DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
		c.Username, c.Password, c.Host, c.Port, c.DBName)

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// keep the pool well under MySQL's max_connections
	conn.SetMaxOpenConns(40)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	return conn, nil
}
