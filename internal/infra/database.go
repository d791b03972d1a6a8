package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the ledger tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes, sobre todo).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Turno{},
		&model.CorteTurno{},
		&model.Venta{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// El índice parcial único de turnos abiertos es el respaldo del invariante
// un-turno-abierto-por-caja: el chequeo en el servicio es check-then-act y
// sin esta restricción una carrera podría dejar dos turnos abiertos.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_turnos_abierto') THEN
		    CREATE UNIQUE INDEX uni_turnos_abierto
		        ON turnos (tienda_id, cajero_id)
		        WHERE estado = 'abierto';
		  END IF;
		END $$`,
		// Búsqueda de cortes Z por turno (precondición de CrearCorteZ)
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cortes_turno_tipo') THEN
		    CREATE INDEX idx_cortes_turno_tipo
		        ON corte_turnos (turno_id, tipo);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the schema (tables + patches) for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Turno{},
		&model.CorteTurno{},
		&model.Venta{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
