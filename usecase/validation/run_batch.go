package validation

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
)

// RunBatch validates the orders delivered for batchDate, uploads the clean and
// rejected partitions and sends the run notification. Only a failure to load
// the product master or to upload a partition is returned as an error.
func (u *validationUsecase) RunBatch(ctx context.Context, batchDate time.Time) (entity.BatchResult, error) {
	start := time.Now()
	defer func() { u.metrics.RunDurationSec.Observe(time.Since(start).Seconds()) }()

	refs, err := u.LoadProductReferences(ctx)
	if err != nil {
		log.Errorf("[ValidationJob] %v", err)
		return entity.BatchResult{}, err
	}

	read := u.ReadIncomingFiles(ctx, batchDate)
	enriched := Enrich(read.Records, refs)
	classified := Classify(enriched, u.rules)
	clean, rejected := PartitionOrders(classified)

	summary := BuildSummary(batchDate, clean, rejected, read.Files)
	summary.CleanKey = outputKey(u.cfg.SuccessPrefix, batchDate, consts.CleanFileName)
	summary.RejectedKey = outputKey(u.cfg.RejectedPrefix, batchDate, consts.RejectedFileName)

	if err := u.writePartition(ctx, clean, summary.CleanKey); err != nil {
		log.Errorf("[ValidationJob] %v", err)
		return entity.BatchResult{}, err
	}
	if err := u.writePartition(ctx, rejected, summary.RejectedKey); err != nil {
		log.Errorf("[ValidationJob] %v", err)
		return entity.BatchResult{}, err
	}

	u.metrics.Records.WithLabelValues(consts.PartitionClean).Add(float64(summary.Passed))
	u.metrics.Records.WithLabelValues(consts.PartitionRejected).Add(float64(summary.Failed))
	u.metrics.FilesSkipped.Add(float64(summary.FilesSkipped))
	u.metrics.RowsSkipped.Add(float64(summary.RowsSkipped))
	u.metrics.LastRunRecords.Set(float64(summary.Total))

	log.Infof("[ValidationJob] Batch %s: total=%d passed=%d failed=%d files=%d skipped_files=%d skipped_rows=%d",
		summary.BatchDate, summary.Total, summary.Passed, summary.Failed,
		summary.FilesRead, summary.FilesSkipped, summary.RowsSkipped)

	subject, body := NotificationMessage(summary)
	if err := u.notifier.Notify(ctx, subject, body); err != nil {
		u.metrics.NotifyFailures.Inc()
		log.Errorf("[Notifier] Failed to send notification: %v", err)
	}

	return entity.BatchResult{
		Summary:  summary,
		Clean:    clean,
		Rejected: rejected,
		Files:    read.Files,
	}, nil
}
