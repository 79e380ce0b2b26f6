package dao

import (
	"fmt"

	"github.com/radhian/order-validation-system/infra/db/model"
)

func (d *dao) CreateValidationProcessLogAssets(payloadList []model.ValidationProcessLogAsset) error {
	tx := d.db.Begin()
	for i := range payloadList {
		if err := tx.Create(&payloadList[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save file asset: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to save file assets: %w", err)
	}
	return nil
}

func (d *dao) GetValidationLogAssetsByLogID(logID int64) ([]model.ValidationProcessLogAsset, error) {
	var assets []model.ValidationProcessLogAsset
	if err := d.db.Where("validation_process_log_id = ?", logID).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch log assets: %w", err)
	}
	return assets, nil
}
