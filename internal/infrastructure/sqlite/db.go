// Package sqlite implementa los repositorios sobre un archivo SQLite local (GORM).
// Es el almacenamiento por defecto: dos colecciones planas, users e invoices, con las filas
// y los abonos de cada factura guardados como JSON dentro del registro.
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open abre (o crea) la base SQLite en path y migra el esquema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&userRow{}, &invoiceRow{}); err != nil {
		return nil, fmt.Errorf("migrar esquema sqlite: %w", err)
	}
	return db, nil
}

// Close libera la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
