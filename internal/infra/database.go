package infra

import (
	"fmt"

	"hostalpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes).
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
		&model.Producto{},
		&model.Ubicacion{},
		&model.ProductoStock{},
		&model.Altera{},
		&model.InventarioDocumento{},
		&model.InventarioDocumentoItem{},
		&model.HistorialCaja{},
		&model.Caja{},
		&model.StockSesionCaja{},
		&model.Venta{},
		&model.VentaItem{},
		&model.InsumoGrupo{},
		&model.InsumoGrupoItem{},
		&model.Receta{},
		&model.PisoZona{},
		&model.Habitacion{},
		&model.Cama{},
		&model.Comodidad{},
		&model.InventarioHabitacion{},
		&model.Huesped{},
		&model.AsignacionHabitacion{},
		&model.ReservaHabitacion{},
		&model.VentaAlojamiento{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches creates the partial unique indexes that enforce the
// one-open-session invariants. Each statement is IF NOT EXISTS so re-running
// on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"unique open historial per usuario", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_historial_cajas_usuario_abierta
  ON historial_cajas (usuario_id)
  WHERE fecha_cierre IS NULL`},
		{"unique open caja per historial", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_cajas_historial_abierta
  ON cajas (historial_id)
  WHERE estado = 'ABIERTA'`},
		{"unique stock row per producto/ubicacion", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_producto_stocks_producto_ubicacion
  ON producto_stocks (producto_id, ubicacion_id)`},
		{"unique item per venta/producto", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_venta_items_venta_producto
  ON venta_items (venta_id, producto_id)`},
		{"unique asignacion activa per cama", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_asignaciones_cama_activa
  ON asignacion_habitaciones (cama_id)
  WHERE activa`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
