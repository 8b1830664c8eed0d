// Command backup verschiebt liegengebliebene Fallback-Turtle-Dateien aus
// abgelehnten Importen in einen S3-Bucket, damit sie den Host überleben und
// später manuell nachgeladen werden können.
package main

import (
	"bytes"
	"compress/gzip"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"

	"github.com/scitedotai/scite-vivo-integration/storage"
)

type BackupConfig struct {
	FallbackDir     string `envconfig:"FALLBACK_DIR" default:"fallback"`
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" required:"true"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"20"`
	RemoveLocal     bool   `envconfig:"REMOVE_LOCAL" default:"true"`
}

func main() {
	log.Println("Starte Fallback-Backup-Prozess...")

	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	// 1. Fallback-Dateien einsammeln
	files, err := collectFallbackFiles(cfg.FallbackDir)
	if err != nil {
		log.Fatalf("Fehler beim Lesen des Fallback-Verzeichnisses: %v", err)
	}
	if len(files) == 0 {
		log.Println("Keine Fallback-Dateien vorhanden, nichts zu tun.")
		return
	}
	log.Printf("%d Fallback-Datei(en) gefunden.", len(files))

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(storage.S3Options{
		Endpoint:  cfg.BackupEndpoint,
		Region:    cfg.BackupRegion,
		AccessKey: cfg.BackupAccessKey,
		SecretKey: cfg.BackupSecretKey,
	})
	if err != nil {
		log.Fatalf("Fehler beim Erstellen des S3-Clients: %v", err)
	}

	// 3. Dateien komprimiert hochladen
	for _, path := range files {
		if err := shipFile(s3Client, cfg, path); err != nil {
			log.Fatalf("Fehler beim Hochladen von %s: %v", path, err)
		}
	}

	// 4. Alte Backups rotieren
	deleted, err := storage.RotateObjects(s3Client, cfg.BackupBucket, cfg.KeepBackups)
	if err != nil {
		log.Fatalf("Fehler bei der Rotation alter Backups: %v", err)
	}
	for _, key := range deleted {
		log.Printf("Altes Backup gelöscht: %s", key)
	}

	log.Println("Backup-Prozess erfolgreich abgeschlossen.")
}

// collectFallbackFiles listet die Turtle-Dateien im Fallback-Verzeichnis.
// Ein fehlendes Verzeichnis bedeutet nur: es gab nie einen abgelehnten
// Import.
func collectFallbackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ttl") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// shipFile komprimiert eine Turtle-Datei und lädt sie in den Bucket. Die
// lokale Datei wird erst nach erfolgreichem Upload entfernt.
func shipFile(client *s3.Client, cfg BackupConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compressed, err := gzipBytes(data)
	if err != nil {
		return err
	}

	key := filepath.Base(path) + ".gz"
	if err := storage.UploadFile(client, cfg.BackupBucket, key, compressed); err != nil {
		return err
	}
	log.Printf("Backup erfolgreich nach s3://%s/%s hochgeladen", cfg.BackupBucket, key)

	if cfg.RemoveLocal {
		if err := os.Remove(path); err != nil {
			log.Printf("Konnte lokale Datei %s nicht löschen: %v", path, err)
		}
	}
	return nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write(data); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
