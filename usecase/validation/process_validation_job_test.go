package validation

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/infra/db/dao"
	"github.com/radhian/order-validation-system/infra/db/model"
	"github.com/radhian/order-validation-system/infra/storage"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) dao.DaoMethod {
	t.Helper()
	conn, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "validation.db"))
	require.NoError(t, err)
	conn.DB().SetMaxOpenConns(1)
	require.NoError(t, dao.Migrate(conn))
	t.Cleanup(func() { conn.Close() })
	return dao.NewDaoMethod(conn)
}

func TestProcessValidationJobRecordsOutcome(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStore(t.TempDir())
	putObject(t, store, "incoming_files/20240105/a.csv", ordersHeader+
		"1,2024-01-05,P1,1,10,Mumbai\n"+
		"2,2024-01-05,P1,1,10,Delhi\n"+
		"3,2024-01-05,P1,x,10,Delhi\n")
	putObject(t, store, "incoming_files/20240105/b.csv", "no,header\n")

	d := newTestDao(t)
	u := newTestUsecase(t, testConfig(t), store, &recordingNotifier{}, d)

	logEntry, err := u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)
	require.Equal(t, consts.StatusInit, logEntry.Status)
	require.NotEmpty(t, logEntry.RunUUID)

	acquired, claimed, err := u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)
	require.Equal(t, logEntry.ID, claimed.ID)

	require.NoError(t, u.ProcessValidationJob(ctx, claimed.ID))
	u.UnlockProcess(ctx, claimed)

	got, err := u.GetValidationResult(logEntry.ID)
	require.NoError(t, err)
	require.Equal(t, consts.StatusFinished, got.Status)
	require.Equal(t, int64(2), got.TotalRows)
	require.Equal(t, int64(1), got.PassedRows)
	require.Equal(t, int64(1), got.FailedRows)
	require.Equal(t, "success/20240105/clean_file.csv", got.CleanKey)
	require.Contains(t, got.Result, `"rows_skipped":1`)

	require.Len(t, got.Assets, 2)
	require.Equal(t, "a.csv", got.Assets[0].FileName)
	require.Equal(t, consts.FileStatusParsed, got.Assets[0].Status)
	require.Equal(t, int64(1), got.Assets[0].RowsSkipped)
	require.Equal(t, consts.FileStatusSkipped, got.Assets[1].Status)
	require.NotEmpty(t, got.Assets[1].ErrorMessage)

	acquired, _, err = u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.False(t, acquired, "finished runs are not picked up again")
}

func TestProcessValidationJobMarksFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReferencePath = filepath.Join(t.TempDir(), "missing.csv")
	d := newTestDao(t)
	u := newTestUsecase(t, cfg, storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, d)

	logEntry, err := u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)

	err = u.ProcessValidationJob(context.Background(), logEntry.ID)
	require.ErrorIs(t, err, ErrReferenceLoad)

	got, err := u.GetValidationResult(logEntry.ID)
	require.NoError(t, err)
	require.Equal(t, consts.StatusFailed, got.Status)
	require.Contains(t, got.ErrorMessage, "reference dataset load failed")
}

func TestTryAcquireLockSerializesBatchDate(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	u := newTestUsecase(t, testConfig(t), storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, d)

	first, err := u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)
	_, err = u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)

	acquired, claimed, err := u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)
	require.Equal(t, first.ID, claimed.ID)

	acquired, _, err = u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.False(t, acquired, "second run for the same date waits")

	u.UnlockProcess(ctx, claimed)
	acquired, _, err = u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestGetValidationResults(t *testing.T) {
	d := newTestDao(t)
	u := newTestUsecase(t, testConfig(t), storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, d)

	_, err := u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)

	logs, err := u.GetValidationResults()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "2024-01-05", logs[0].BatchDate)

	_, err = u.GetValidationResult(logs[0].ID + 100)
	require.Error(t, err)
}

type panicNotifier struct {
	calls int32
}

func (p *panicNotifier) Notify(ctx context.Context, subject, body string) error {
	atomic.AddInt32(&p.calls, 1)
	panic("notifier client crashed")
}

func TestProcessValidationJobPanicMarksFailed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStore(t.TempDir())
	putObject(t, store, "incoming_files/20240105/a.csv", ordersHeader+"1,2024-01-05,P1,1,10,Mumbai\n")

	d := newTestDao(t)
	n := &panicNotifier{}
	u := NewValidationUsecase(testConfig(t), store, n, d, nil, nil).(*validationUsecase)

	logEntry, err := u.ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		acquired, claimed, err := u.TryAcquireLock(ctx)
		require.NoError(t, err)
		if !acquired {
			break
		}
		require.Error(t, u.ProcessValidationJob(ctx, claimed.ID))
		u.UnlockProcess(ctx, claimed)
	}

	require.Equal(t, int32(1), atomic.LoadInt32(&n.calls), "a crashed run is not retried")

	got, err := u.GetValidationResult(logEntry.ID)
	require.NoError(t, err)
	require.Equal(t, consts.StatusFailed, got.Status)
	require.Contains(t, got.ErrorMessage, "panicked")
}

// staleListDao returns a pending list captured before another worker
// finished the run.
type staleListDao struct {
	dao.DaoMethod
	pending []model.ValidationProcessLog
}

func (s *staleListDao) GetValidationProcessLogByStatusList(statusList []int) ([]model.ValidationProcessLog, error) {
	return s.pending, nil
}

func TestTryAcquireLockSkipsRunFinishedMeanwhile(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)

	logEntry, err := NewValidationUsecase(testConfig(t), storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, d, nil, nil).
		ProcessValidationInit(testBatchDate, "tester")
	require.NoError(t, err)
	pending := []model.ValidationProcessLog{{ID: logEntry.ID, BatchDate: logEntry.BatchDate}}

	finished := *logEntry
	finished.Status = consts.StatusFinished
	require.NoError(t, d.UpdateValidationProcessLog(finished))

	u := newTestUsecase(t, testConfig(t), storage.NewLocalStore(t.TempDir()), &recordingNotifier{}, &staleListDao{DaoMethod: d, pending: pending})

	acquired, _, err := u.TryAcquireLock(ctx)
	require.NoError(t, err)
	require.False(t, acquired)
	require.False(t, u.locker.IsProcessing(logEntry.BatchDate), "lock is released for a skipped run")
}
