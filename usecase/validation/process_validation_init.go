package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/infra/db/model"
)

// ProcessValidationInit registers a pending run for batchDate. The run is
// picked up later by a worker through TryAcquireLock.
func (u *validationUsecase) ProcessValidationInit(batchDate time.Time, operator string) (*model.ValidationProcessLog, error) {
	if u.dao == nil {
		return nil, errors.New("process log store is not configured")
	}
	timeNowUnix := time.Now().Unix()
	date := batchDate.Format(consts.BatchDateLayout)

	processInfoJSON, err := json.Marshal(entity.ProcessMetadata{BatchDate: date})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal process info: %w", err)
	}

	logEntry := &model.ValidationProcessLog{
		RunUUID:     uuid.NewString(),
		BatchDate:   date,
		Status:      consts.StatusInit,
		ProcessInfo: string(processInfoJSON),
		CreateTime:  timeNowUnix,
		CreateBy:    operator,
		UpdateTime:  timeNowUnix,
		UpdateBy:    operator,
	}
	if err := u.dao.CreateValidationProcessLog(logEntry); err != nil {
		return nil, fmt.Errorf("failed to create validation process log: %w", err)
	}
	return logEntry, nil
}
