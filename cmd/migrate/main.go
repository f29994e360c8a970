package main

import (
	"errors"
	"flag"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/bloodstock/blood-stock-service/pkg/config"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// Ejecuta las migraciones SQL de la carpeta migrations/.
//
//	go run ./cmd/migrate            # aplica todas las pendientes
//	go run ./cmd/migrate -down 1    # revierte la última
func main() {
	var down int
	flag.IntVar(&down, "down", 0, "número de migraciones a revertir (0 = aplicar todas)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// golang-migrate usa el esquema pgx5:// para el driver de pgx/v5.
	url := cfg.DB.ConnectionString()
	if strings.HasPrefix(url, "postgres://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgres://")
	} else if strings.HasPrefix(url, "postgresql://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgresql://")
	}

	m, err := migrate.New("file://migrations", url)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	if down > 0 {
		err = m.Steps(-down)
	} else {
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("sin migraciones pendientes")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("ejecutar migraciones")
	}

	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
}
