package storage

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mo-sami19/zynk/models"
)

// DB is the archive database, nil when DB_HOST is not configured.
var DB *gorm.DB

// InitDB connects to MySQL when DB_HOST is set, with pooling and retry.
// Like Redis, the archive is optional: a failed connection disables
// archival but never blocks the gateway.
func InitDB() error {
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	if host == "" {
		return nil
	}

	port := getenv("DB_PORT", "3306")
	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	name := getenv("DB_NAME", "zynk_gateway")
	params := getenv("DB_PARAMS", "charset=utf8mb4&parseTime=True&loc=Local")
	if !strings.Contains(params, "timeout=") {
		params += "&timeout=10s"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, name, params)
	}

	safeDSN := dsn
	if pass != "" {
		safeDSN = strings.Replace(safeDSN, pass, "******", 1)
	}
	log.Printf("[storage] using DSN: %s", safeDSN)

	var gormLogger logger.Interface
	if strings.ToLower(getenv("ENV", "development")) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	maxRetries := atoi(getenv("DB_CONNECT_RETRIES", "5"))
	var db *gorm.DB
	var err error
	backoff := time.Second
	for attempt := 0; attempt < maxRetries; attempt++ {
		db, err = gorm.Open(gormmysql.Open(dsn), &gorm.Config{Logger: gormLogger})
		if err == nil {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	if err != nil {
		return fmt.Errorf("connect archive database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(atoi(getenv("DB_MAX_OPEN_CONNS", "10")))
	sqlDB.SetMaxIdleConns(atoi(getenv("DB_MAX_IDLE_CONNS", "10")))
	sqlDB.SetConnMaxLifetime(time.Duration(atoi(getenv("DB_CONN_MAX_LIFETIME", "3600"))) * time.Second)

	if strings.ToLower(getenv("ENV", "development")) == "development" {
		if err := db.AutoMigrate(
			&models.ChatSessionRecord{},
			&models.ChatMessageRecord{},
			&models.ContactRecord{},
		); err != nil {
			return fmt.Errorf("migrate archive tables: %w", err)
		}
	}

	DB = db
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	if v <= 0 {
		return 0
	}
	return v
}
