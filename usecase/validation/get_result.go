package validation

import (
	"github.com/radhian/order-validation-system/infra/db/model"
)

func (u *validationUsecase) GetValidationResults() ([]model.ValidationProcessLog, error) {
	return u.dao.GetValidationProcessLog()
}

func (u *validationUsecase) GetValidationResult(logID int64) (model.ValidationProcessLog, error) {
	logEntry, err := u.dao.GetValidationProcessLogByID(logID)
	if err != nil {
		return logEntry, err
	}
	assets, err := u.dao.GetValidationLogAssetsByLogID(logID)
	if err != nil {
		return logEntry, err
	}
	logEntry.Assets = assets
	return logEntry, nil
}
