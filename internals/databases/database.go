package database

import (
	"fmt"
	"net"
	"net/url"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"quizbuilder_backend/internals/configs"
	model "quizbuilder_backend/internals/features/quizzes/model"
)

// ConnectDB opens the SQL store selected by DB_DRIVER (postgres | mysql).
func ConnectDB(driver string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql", "":
		log.Info("🔌 Koneksi ke PostgreSQL...")
		dialector = postgres.New(postgres.Config{
			DSN:                  postgresDSN(),
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		})
	case "mysql":
		log.Info("🔌 Koneksi ke MySQL...")
		dialector = mysql.Open(mysqlDSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: configs.NewGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	log.Info("✅ DB connected.")
	return db, nil
}

func postgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(configs.GetEnv("DB_USER", "postgres"), configs.GetEnv("DB_PASSWORD")),
		Host:   net.JoinHostPort(configs.GetEnv("DB_HOST", "localhost"), configs.GetEnv("DB_PORT", "5432")),
		Path:   "/" + configs.GetEnv("DB_NAME", "quizbuilder"),
	}
	q := url.Values{}
	q.Set("sslmode", configs.GetEnv("DB_SSLMODE", "disable"))
	q.Set("application_name", "quizbuilder")
	u.RawQuery = q.Encode()
	return u.String()
}

func mysqlDSN() string {
	cfg := mysqlDriver.NewConfig()
	cfg.User = configs.GetEnv("DB_USER", "root")
	cfg.Passwd = configs.GetEnv("DB_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(configs.GetEnv("DB_HOST", "localhost"), configs.GetEnv("DB_PORT", "3306"))
	cfg.DBName = configs.GetEnv("DB_NAME", "quizbuilder")
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warnf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates or updates the quizzes table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.QuizModel{})
}

func WarmUpQueries(db *gorm.DB) {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			log.Warnf("warm-up ping err: %v", err)
		}
	}()
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
