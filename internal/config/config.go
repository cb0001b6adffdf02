package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Addr         string
	Storage      string
	DataFile     string
	DatabaseURL  string
	RecordSlot   string
	TickInterval time.Duration
	Locale       string
	Timezone     string
	LogLevel     string
	LogFormat    string
	GinMode      string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SANTA_ADDR", "127.0.0.1:8080")
	v.SetDefault("SANTA_STORAGE", StorageFile)
	v.SetDefault("SANTA_DATA_FILE", "data/event.json")
	v.SetDefault("SANTA_RECORD_SLOT", "current")
	v.SetDefault("SANTA_TICK_INTERVAL", "5s")
	v.SetDefault("SANTA_LOCALE", "fr")
	v.SetDefault("SANTA_TIMEZONE", "Europe/Paris")
	v.SetDefault("SANTA_LOG_LEVEL", "info")
	v.SetDefault("SANTA_LOG_FORMAT", "text")
	v.SetDefault("GIN_MODE", "release")

	cfg := &Config{
		Addr:         v.GetString("SANTA_ADDR"),
		Storage:      strings.ToLower(strings.TrimSpace(v.GetString("SANTA_STORAGE"))),
		DataFile:     v.GetString("SANTA_DATA_FILE"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		RecordSlot:   v.GetString("SANTA_RECORD_SLOT"),
		TickInterval: v.GetDuration("SANTA_TICK_INTERVAL"),
		Locale:       v.GetString("SANTA_LOCALE"),
		Timezone:     v.GetString("SANTA_TIMEZONE"),
		LogLevel:     v.GetString("SANTA_LOG_LEVEL"),
		LogFormat:    v.GetString("SANTA_LOG_FORMAT"),
		GinMode:      v.GetString("GIN_MODE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: SANTA_ADDR ne peut pas être vide")
	}

	if c.TickInterval <= 0 {
		return fmt.Errorf("config: SANTA_TICK_INTERVAL doit être une durée positive (ex: 5s)")
	}

	switch c.Storage {
	case StorageFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("config: SANTA_DATA_FILE est requis avec SANTA_STORAGE=file")
		}
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL est requis avec SANTA_STORAGE=postgres")
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: SANTA_STORAGE inconnu %q (file, postgres ou memory)", c.Storage)
	}

	return nil
}
