package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ConnectDB opens the database selected by DB_DRIVER (mysql by default,
// sqlite for local runs and tests).
func ConnectDB() *gorm.DB {
	driver := Getenv("DB_DRIVER", "mysql")
	dsn := os.Getenv("DB_DSN")

	var (
		db  *gorm.DB
		err error
	)

	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "done.db"
		}
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "admin:12345678@tcp(127.0.0.1:3306)/donedb?charset=utf8mb4&parseTime=True&loc=Local"
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		panic("Failed to connect to database")
	}
	return db
}
