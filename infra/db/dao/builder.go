package dao

import (
	"github.com/radhian/order-validation-system/infra/db/model"

	"github.com/jinzhu/gorm"
)

type DaoMethod interface {
	GetValidationProcessLog() ([]model.ValidationProcessLog, error)
	GetValidationProcessLogByStatusList(statusList []int) ([]model.ValidationProcessLog, error)
	GetValidationProcessLogByID(logID int64) (model.ValidationProcessLog, error)
	CreateValidationProcessLog(payload *model.ValidationProcessLog) error
	UpdateValidationProcessLog(logEntry model.ValidationProcessLog) error
	CreateValidationProcessLogAssets(payloadList []model.ValidationProcessLogAsset) error
	GetValidationLogAssetsByLogID(logID int64) ([]model.ValidationProcessLogAsset, error)
}

type dao struct {
	db *gorm.DB
}

func NewDaoMethod(db *gorm.DB) DaoMethod {
	return &dao{db: db}
}

// Migrate creates or updates the tables used by the validation process log.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ValidationProcessLog{},
		&model.ValidationProcessLogAsset{},
	).Error
}
