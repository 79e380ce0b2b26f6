package db

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres
	_ "github.com/jinzhu/gorm/dialects/sqlite"   //sqlite3
	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/infra/db/dao"
)

// Open connects to the process log database and migrates its tables.
func Open(dialect, dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s database: %w", dialect, err)
	}
	if dialect == "sqlite3" {
		// sqlite serialises writers; a single connection avoids "database is locked".
		conn.DB().SetMaxOpenConns(1)
	}
	if err := dao.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s database: %w", dialect, err)
	}
	log.Infof("[DB] Connected to %s database", dialect)
	return conn, nil
}
