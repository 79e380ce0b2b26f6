package validation

import (
	"context"
	"errors"
	"time"

	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/infra/db/dao"
	"github.com/radhian/order-validation-system/infra/db/model"
	"github.com/radhian/order-validation-system/infra/locker"
	"github.com/radhian/order-validation-system/infra/metrics"
	"github.com/radhian/order-validation-system/infra/notifier"
	"github.com/radhian/order-validation-system/infra/storage"
)

var (
	ErrReferenceLoad  = errors.New("reference dataset load failed")
	ErrPartitionWrite = errors.New("partition write failed")
)

type ValidationUsecase interface {
	ProcessValidationInit(batchDate time.Time, operator string) (*model.ValidationProcessLog, error)
	GetValidationResults() ([]model.ValidationProcessLog, error)
	GetValidationResult(logID int64) (model.ValidationProcessLog, error)
	TryAcquireLock(ctx context.Context) (bool, model.ValidationProcessLog, error)
	UnlockProcess(ctx context.Context, logEntry model.ValidationProcessLog)
	ProcessValidationJob(ctx context.Context, logID int64) error
	RunBatch(ctx context.Context, batchDate time.Time) (entity.BatchResult, error)
}

type validationUsecase struct {
	cfg      config.Config
	store    storage.ObjectStore
	notifier notifier.Notifier
	dao      dao.DaoMethod
	locker   *locker.Locker
	metrics  *metrics.Registry
	rules    []Rule
}

func NewValidationUsecase(
	cfg config.Config,
	store storage.ObjectStore,
	n notifier.Notifier,
	d dao.DaoMethod,
	l *locker.Locker,
	m *metrics.Registry,
) ValidationUsecase {
	if n == nil {
		n = notifier.NewLogNotifier()
	}
	if l == nil {
		l = locker.New()
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &validationUsecase{
		cfg:      cfg,
		store:    store,
		notifier: n,
		dao:      d,
		locker:   l,
		metrics:  m,
		rules:    DefaultRules(cfg.AllowedCities),
	}
}
