package db

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"
	"xuanwei-server/internal/config"

	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	_ "github.com/lib/pq"                                // postgres driver
)

var instance *sql.DB

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance
func LoadInstance() {
	dsn := config.Instance().PGDSN

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	instance = db
}

// Migrate runs the migrations
func Migrate() {
	migrationsPath := config.Instance().MigrationsPath
	db := Instance()

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		panic(err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			panic(err)
		}
	}
}

// Scanner abstracts over *sql.Row and *sql.Rows
type Scanner interface {
	Scan(...interface{}) error
}
