// Command backup dumps the climate database, compresses the dump and uploads
// it to the backup bucket, then rotates out the oldest archives. Intended to
// run from cron in the deployment environment.
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/kelseyhightower/envconfig"

	"climate-science-service/storage"
)

type BackupConfig struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	Bucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	Endpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	AccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	Region    string `envconfig:"BACKUP_S3_REGION" required:"true"`

	KeepBackups int `envconfig:"KEEP_BACKUPS" default:"4"`
}

func main() {
	log.Println("starting database backup")

	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	ctx := context.Background()

	dump, err := createDump(cfg)
	if err != nil {
		log.Fatalf("creating database dump: %v", err)
	}

	client, err := storage.NewClient(ctx, cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey, cfg.Bucket)
	if err != nil {
		log.Fatalf("creating storage client: %v", err)
	}

	key := fmt.Sprintf("climate-%s.sql.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	if err := client.Upload(ctx, key, dump); err != nil {
		log.Fatalf("uploading backup: %v", err)
	}
	log.Printf("uploaded backup s3://%s/%s (%d bytes)", cfg.Bucket, key, len(dump))

	if err := rotate(ctx, client, cfg.KeepBackups); err != nil {
		log.Fatalf("rotating old backups: %v", err)
	}

	log.Println("backup finished")
}

func createDump(cfg BackupConfig) ([]byte, error) {
	cmd := exec.Command("pg_dump",
		"-h", cfg.DBHost,
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // password comes in via PGPASSWORD
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := io.Copy(gz, stdout); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rotate(ctx context.Context, client *storage.Client, keep int) error {
	keys, err := client.ListNewestFirst(ctx)
	if err != nil {
		return err
	}
	if len(keys) <= keep {
		return nil
	}
	for _, key := range keys[keep:] {
		log.Printf("deleting old backup %s", key)
		if err := client.Delete(ctx, key); err != nil {
			log.Printf("deleting %s: %v", key, err)
		}
	}
	return nil
}
