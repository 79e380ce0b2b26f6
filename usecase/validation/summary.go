package validation

import (
	"fmt"
	"time"

	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
)

func BuildSummary(batchDate time.Time, clean, rejected entity.Partition, files []entity.SourceFileReport) entity.Summary {
	s := entity.Summary{
		BatchDate: batchDate.Format(consts.BatchDateLayout),
		Passed:    len(clean.Rows),
		Failed:    len(rejected.Rows),
	}
	s.Total = s.Passed + s.Failed
	for _, f := range files {
		if f.Err != nil {
			s.FilesSkipped++
			continue
		}
		s.FilesRead++
		s.RowsSkipped += f.RowsSkipped
	}
	return s
}

// NotificationMessage returns the subject and body announcing a finished
// run: an empty-batch notice when nothing was ingested, counts otherwise.
func NotificationMessage(s entity.Summary) (string, string) {
	subject := fmt.Sprintf("validation email %s", s.BatchDate)
	if s.Total == 0 {
		return subject, fmt.Sprintf("No incoming files found for %s.", s.BatchDate)
	}
	body := fmt.Sprintf(
		"Total %d incoming files processed.\n%d files passed validation\n%d files failed validation.",
		s.Total, s.Passed, s.Failed,
	)
	return subject, body
}
