package dao

import (
	"fmt"

	"github.com/radhian/order-validation-system/infra/db/model"
)

func (d *dao) GetValidationProcessLog() ([]model.ValidationProcessLog, error) {
	var logs []model.ValidationProcessLog
	if err := d.db.Order("create_time DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func (d *dao) GetValidationProcessLogByStatusList(statusList []int) ([]model.ValidationProcessLog, error) {
	var processLogList []model.ValidationProcessLog
	if err := d.db.
		Select("id, batch_date").
		Where("status IN (?)", statusList).
		Order("create_time ASC, id ASC").
		Find(&processLogList).Error; err != nil {
		return nil, err
	}
	return processLogList, nil
}

func (d *dao) CreateValidationProcessLog(payload *model.ValidationProcessLog) error {
	if err := d.db.Create(payload).Error; err != nil {
		return fmt.Errorf("failed to create process log: %w", err)
	}
	return nil
}

func (d *dao) GetValidationProcessLogByID(logID int64) (model.ValidationProcessLog, error) {
	var logEntry model.ValidationProcessLog
	if err := d.db.First(&logEntry, logID).Error; err != nil {
		return logEntry, fmt.Errorf("log not found: %w", err)
	}
	return logEntry, nil
}

func (d *dao) UpdateValidationProcessLog(logEntry model.ValidationProcessLog) error {
	if err := d.db.Save(&logEntry).Error; err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}
	return nil
}
