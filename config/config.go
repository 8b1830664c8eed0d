package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// VIVO-Instanz, in die importiert wird
	VIVOBaseURL  string `envconfig:"VIVO_BASE_URL" default:"http://localhost:8080/vivo"`
	VIVOEmail    string `envconfig:"VIVO_EMAIL" default:"vivo_root@mydomain.edu"`
	VIVOPassword string `envconfig:"VIVO_PASSWORD"`

	SciteAPIURL string `envconfig:"SCITE_API_URL" default:"http://localhost:8000"`

	// Verzeichnis für Turtle-Dateien abgelehnter Importe
	FallbackDir string `envconfig:"FALLBACK_DIR" default:"fallback"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4243"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"scite_vivo"`

	CronSchedule     string `envconfig:"CRON_SCHEDULE" default:"0 3 * * *"`
	ImportBatchLimit int    `envconfig:"IMPORT_BATCH_LIMIT" default:"500"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// SPARQLUpdateURL ist der Bulk-Update-Endpunkt der VIVO-Instanz.
func (c *Config) SPARQLUpdateURL() string {
	return c.VIVOBaseURL + "/api/sparqlUpdate"
}

// IndividualBase ist die URI-Basis, unter der Individuen angelegt werden.
func (c *Config) IndividualBase() string {
	return c.VIVOBaseURL + "/individual/"
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
