package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/infra/db/model"
)

// ProcessValidationJob executes the pending run logID and records its outcome
// and per-file assets in the process log.
func (u *validationUsecase) ProcessValidationJob(ctx context.Context, logID int64) (err error) {
	var logEntry model.ValidationProcessLog
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[ValidationJob] Panic recovered for LogID %d: %v", logID, r)
			err = fmt.Errorf("validation job %d panicked: %v", logID, r)
			u.metrics.Runs.WithLabelValues("failed").Inc()
			if logEntry.ID != 0 {
				// Leaving the log Running would hand it back to the next worker tick.
				u.finishProcessLog(logEntry, consts.StatusFailed, err.Error())
			}
		}
	}()

	log.Infof("[ValidationJob] Starting job for LogID: %d", logID)

	logEntry, err = u.dao.GetValidationProcessLogByID(logID)
	if err != nil {
		log.Errorf("[ValidationJob] Could not fetch process log %d: %v", logID, err)
		return err
	}

	batchDate, err := parseProcessMetadata(logEntry)
	if err != nil {
		log.Errorf("[ValidationJob] Metadata parse error for LogID %d: %v", logID, err)
		u.finishProcessLog(logEntry, consts.StatusFailed, err.Error())
		return err
	}

	logEntry.Status = consts.StatusRunning
	logEntry.UpdateTime = time.Now().Unix()
	logEntry.UpdateBy = consts.SystemOperator
	if err := u.dao.UpdateValidationProcessLog(logEntry); err != nil {
		log.Warnf("[ValidationJob] Failed to mark log %d running: %v", logID, err)
	}

	result, runErr := u.RunBatch(ctx, batchDate)
	if runErr != nil {
		u.metrics.Runs.WithLabelValues("failed").Inc()
		u.finishProcessLog(logEntry, consts.StatusFailed, runErr.Error())
		return runErr
	}
	u.metrics.Runs.WithLabelValues("finished").Inc()

	if err := u.dao.CreateValidationProcessLogAssets(buildProcessLogAssets(logID, result.Files)); err != nil {
		log.Warnf("[ValidationJob] Failed to save file assets for LogID %d: %v", logID, err)
	}

	logEntry = applyBatchResult(logEntry, result)
	if err := u.finishProcessLog(logEntry, consts.StatusFinished, ""); err != nil {
		return err
	}

	log.Infof("[ValidationJob] Job completed for LogID %d", logID)
	return nil
}

func parseProcessMetadata(logEntry model.ValidationProcessLog) (time.Time, error) {
	date := logEntry.BatchDate
	if logEntry.ProcessInfo != "" {
		var metadata entity.ProcessMetadata
		if err := json.Unmarshal([]byte(logEntry.ProcessInfo), &metadata); err != nil {
			return time.Time{}, fmt.Errorf("failed to parse process metadata: %w", err)
		}
		if metadata.BatchDate != "" {
			date = metadata.BatchDate
		}
	}
	batchDate, err := time.Parse(consts.BatchDateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid batch date %q: %w", date, err)
	}
	return batchDate, nil
}

func applyBatchResult(logEntry model.ValidationProcessLog, result entity.BatchResult) model.ValidationProcessLog {
	logEntry.TotalRows = int64(result.Summary.Total)
	logEntry.PassedRows = int64(result.Summary.Passed)
	logEntry.FailedRows = int64(result.Summary.Failed)
	logEntry.CleanKey = result.Summary.CleanKey
	logEntry.RejectedKey = result.Summary.RejectedKey
	if summaryJSON, err := json.Marshal(result.Summary); err == nil {
		logEntry.Result = string(summaryJSON)
	}
	return logEntry
}

func buildProcessLogAssets(logID int64, files []entity.SourceFileReport) []model.ValidationProcessLogAsset {
	now := time.Now().Unix()
	assets := make([]model.ValidationProcessLogAsset, 0, len(files))
	for _, f := range files {
		asset := model.ValidationProcessLogAsset{
			ValidationProcessLogID: logID,
			FileName:               path.Base(f.Key),
			FileKey:                f.Key,
			Status:                 consts.FileStatusParsed,
			RowsRead:               int64(f.RowsRead),
			RowsSkipped:            int64(f.RowsSkipped),
			CreateTime:             now,
			CreateBy:               consts.SystemOperator,
		}
		if f.Err != nil {
			asset.Status = consts.FileStatusSkipped
			asset.ErrorMessage = f.Err.Error()
		}
		assets = append(assets, asset)
	}
	return assets
}

func (u *validationUsecase) finishProcessLog(logEntry model.ValidationProcessLog, status int, errMsg string) error {
	logEntry.Status = status
	logEntry.ErrorMessage = errMsg
	logEntry.UpdateTime = time.Now().Unix()
	logEntry.UpdateBy = consts.SystemOperator
	if err := u.dao.UpdateValidationProcessLog(logEntry); err != nil {
		log.Errorf("[ValidationJob] Failed to update log %d: %v", logEntry.ID, err)
		return fmt.Errorf("failed to update log: %w", err)
	}
	return nil
}
