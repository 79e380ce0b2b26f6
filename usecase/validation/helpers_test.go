package validation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/infra/db/dao"
	"github.com/radhian/order-validation-system/infra/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testBatchDate = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

const testReferenceCSV = "product_id,price\nP1,10\nP2,2.5\nP3,100\n"

type notification struct {
	subject string
	body    string
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []notification
	fails bool
}

func (r *recordingNotifier) Notify(ctx context.Context, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notification{subject: subject, body: body})
	if r.fails {
		return errors.New("notifier down")
	}
	return nil
}

// failingStore wraps an ObjectStore and fails selected operations.
type failingStore struct {
	storage.ObjectStore
	listErr error
	getErr  map[string]error
	putErr  error
}

func (f *failingStore) List(ctx context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ObjectStore.List(ctx, prefix)
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	return f.ObjectStore.Get(ctx, key)
}

func (f *failingStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.ObjectStore.Put(ctx, key, body, contentType)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	refPath := filepath.Join(t.TempDir(), "product_master.csv")
	require.NoError(t, os.WriteFile(refPath, []byte(testReferenceCSV), 0o644))
	return config.Config{
		IncomingPrefix:    "incoming_files/",
		SuccessPrefix:     "success/",
		RejectedPrefix:    "rejected/",
		ReferencePath:     refPath,
		AllowedCities:     []string{"Bangalore", "Mumbai"},
		SourceReadWorkers: 2,
		Location:          time.UTC,
	}
}

func newTestUsecase(t *testing.T, cfg config.Config, store storage.ObjectStore, n *recordingNotifier, d dao.DaoMethod) *validationUsecase {
	t.Helper()
	return NewValidationUsecase(cfg, store, n, d, nil, nil).(*validationUsecase)
}

func putObject(t *testing.T, store storage.ObjectStore, key, body string) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), key, []byte(body), "text/csv"))
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validOrder(id string) entity.EnrichedOrder {
	return entity.EnrichedOrder{
		OrderRecord: entity.OrderRecord{
			OrderID:   id,
			OrderDate: datePtr(2024, 1, 5),
			ProductID: "P1",
			Quantity:  dec("3"),
			Sales:     dec("30"),
			City:      "Bangalore",
		},
		Price:           dec("10"),
		SaleActualPrice: dec("30"),
	}
}
