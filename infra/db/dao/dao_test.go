package dao

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/infra/db/model"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	conn.DB().SetMaxOpenConns(1)
	require.NoError(t, Migrate(conn))
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestProcessLogLifecycle(t *testing.T) {
	d := NewDaoMethod(newTestDB(t))

	first := &model.ValidationProcessLog{RunUUID: "run-1", BatchDate: "2024-01-05", Status: consts.StatusInit, CreateTime: 10, CreateBy: "op", UpdateTime: 10, UpdateBy: "op"}
	second := &model.ValidationProcessLog{RunUUID: "run-2", BatchDate: "2024-01-06", Status: consts.StatusFinished, CreateTime: 20, CreateBy: "op", UpdateTime: 20, UpdateBy: "op"}
	require.NoError(t, d.CreateValidationProcessLog(first))
	require.NoError(t, d.CreateValidationProcessLog(second))
	require.NotZero(t, first.ID)

	pending, err := d.GetValidationProcessLogByStatusList([]int{consts.StatusInit, consts.StatusRunning})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first.ID, pending[0].ID)
	require.Equal(t, "2024-01-05", pending[0].BatchDate)

	got, err := d.GetValidationProcessLogByID(first.ID)
	require.NoError(t, err)
	got.Status = consts.StatusFinished
	got.TotalRows = 3
	require.NoError(t, d.UpdateValidationProcessLog(got))

	got, err = d.GetValidationProcessLogByID(first.ID)
	require.NoError(t, err)
	require.Equal(t, consts.StatusFinished, got.Status)
	require.Equal(t, int64(3), got.TotalRows)

	all, err := d.GetValidationProcessLog()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "run-2", all[0].RunUUID)

	_, err = d.GetValidationProcessLogByID(999)
	require.Error(t, err)
}

func TestProcessLogAssets(t *testing.T) {
	d := NewDaoMethod(newTestDB(t))

	logEntry := &model.ValidationProcessLog{RunUUID: "run-1", BatchDate: "2024-01-05", Status: consts.StatusRunning, CreateBy: "op", UpdateBy: "op"}
	require.NoError(t, d.CreateValidationProcessLog(logEntry))

	assets := []model.ValidationProcessLogAsset{
		{ValidationProcessLogID: logEntry.ID, FileName: "a.csv", FileKey: "in/a.csv", Status: consts.FileStatusParsed, RowsRead: 4, RowsSkipped: 1, CreateBy: "op"},
		{ValidationProcessLogID: logEntry.ID, FileName: "b.csv", FileKey: "in/b.csv", Status: consts.FileStatusSkipped, ErrorMessage: "missing header", CreateBy: "op"},
	}
	require.NoError(t, d.CreateValidationProcessLogAssets(assets))

	got, err := d.GetValidationLogAssetsByLogID(logEntry.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a.csv", got[0].FileName)
	require.Equal(t, int64(1), got[0].RowsSkipped)
	require.Equal(t, "missing header", got[1].ErrorMessage)

	none, err := d.GetValidationLogAssetsByLogID(logEntry.ID + 1)
	require.NoError(t, err)
	require.Empty(t, none)
}
