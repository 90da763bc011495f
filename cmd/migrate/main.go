package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/logger"
)

func main() {
	var command, source string
	var steps int
	flag.StringVar(&command, "cmd", "up", "Command to run: up, down, steps, version")
	flag.StringVar(&source, "source", "file://migrations", "Migration source url")
	flag.IntVar(&steps, "n", 1, "Number of steps for -cmd steps (negative rolls back)")
	flag.Parse()

	config.Init()
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	db := config.Global.DB
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", db.User, db.Password, db.Host, db.Port, db.Name)

	m, err := migrate.New(source, dsn)
	if err != nil {
		logger.Fatal("Migration init failed", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(steps)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("Read version failed", zap.Error(verr))
		}
		logger.Info("Migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		logger.Fatal("Unknown command", zap.String("cmd", command))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Migration failed", zap.String("cmd", command), zap.Error(err))
	}
	logger.Info("Migration done", zap.String("cmd", command))
}
