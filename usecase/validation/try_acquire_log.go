package validation

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/infra/db/model"
)

// TryAcquireLock claims the oldest pending run whose batch date is not
// already being processed in this process.
func (u *validationUsecase) TryAcquireLock(ctx context.Context) (bool, model.ValidationProcessLog, error) {
	processLogList, err := u.dao.GetValidationProcessLogByStatusList([]int{consts.StatusInit, consts.StatusRunning})
	if err != nil {
		return false, model.ValidationProcessLog{}, err
	}

	for _, processLog := range processLogList {
		if u.locker.IsProcessing(processLog.BatchDate) {
			continue
		}
		if !u.locker.TryMarkAsProcessing(processLog.BatchDate, processLog.ID) {
			continue
		}

		// Another worker may have finished this log between the query and the lock.
		current, err := u.dao.GetValidationProcessLogByID(processLog.ID)
		if err != nil {
			u.locker.Unlock(processLog.BatchDate, processLog.ID)
			return false, model.ValidationProcessLog{}, err
		}
		if current.Status != consts.StatusInit && current.Status != consts.StatusRunning {
			u.locker.Unlock(processLog.BatchDate, processLog.ID)
			continue
		}

		log.Infof("[LOCK_PROCESS] log_id:%d batch_date:%s", processLog.ID, processLog.BatchDate)
		return true, processLog, nil
	}

	return false, model.ValidationProcessLog{}, nil
}

func (u *validationUsecase) UnlockProcess(ctx context.Context, logEntry model.ValidationProcessLog) {
	u.locker.Unlock(logEntry.BatchDate, logEntry.ID)
	log.Infof("[UNLOCK_PROCESS] log_id:%d batch_date:%s", logEntry.ID, logEntry.BatchDate)
}
