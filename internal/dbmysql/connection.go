package dbmysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/config"
)

// NewMySQL returns a GORM DB instance connected to MySQL.
func NewMySQL(cnf *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cnf.DSN()), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cnf.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates the messaging tables. Called from main, not from
// repositories.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Message{}, &Patient{}, &Caregiver{})
}
