package bootstrap

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/infra/db"
	"github.com/radhian/order-validation-system/infra/db/dao"
	"github.com/radhian/order-validation-system/infra/locker"
	"github.com/radhian/order-validation-system/infra/metrics"
	"github.com/radhian/order-validation-system/infra/notifier"
	"github.com/radhian/order-validation-system/infra/storage"
	usecase "github.com/radhian/order-validation-system/usecase/validation"
)

// App holds the long-lived dependencies shared by the entrypoints.
type App struct {
	Config  config.Config
	DB      *gorm.DB
	Store   storage.ObjectStore
	Locker  *locker.Locker
	Metrics *metrics.Registry
	Usecase usecase.ValidationUsecase

	closers []func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	cfg.ApplyLogLevel()

	conn, err := db.Open(cfg.DBDialect, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, DB: conn, Locker: locker.New(), Metrics: metrics.NewRegistry()}
	a.closers = append(a.closers, conn.Close)

	a.Store, err = NewObjectStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	n, err := a.newNotifier(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Usecase = usecase.NewValidationUsecase(cfg, a.Store, n, dao.NewDaoMethod(conn), a.Locker, a.Metrics)
	return a, nil
}

func NewObjectStore(ctx context.Context, cfg config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:          cfg.BucketName,
			Region:          cfg.AWSRegion,
			AccessKey:       cfg.AccessKey,
			SecretAccessKey: cfg.SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		log.Infof("[Bootstrap] Using S3 bucket %s", cfg.BucketName)
		return store, nil
	case "local":
		log.Infof("[Bootstrap] Using local storage at %s", cfg.LocalStorageDir)
		return storage.NewLocalStore(cfg.LocalStorageDir), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func (a *App) newNotifier(ctx context.Context) (notifier.Notifier, error) {
	cfg := a.Config
	var multi notifier.Multi
	for _, name := range cfg.Notifiers {
		switch name {
		case "log":
			multi = append(multi, notifier.NewLogNotifier())
		case "ses":
			ses, err := notifier.NewSESNotifier(ctx, notifier.SESOptions{
				Region:          cfg.EmailRegion,
				AccessKey:       cfg.AccessKey,
				SecretAccessKey: cfg.SecretAccessKey,
				Sender:          cfg.EmailSender,
				Receivers:       cfg.EmailReceivers,
			})
			if err != nil {
				return nil, err
			}
			multi = append(multi, ses)
		case "slack":
			multi = append(multi, notifier.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID))
		case "kafka":
			k := notifier.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
			a.closers = append(a.closers, k.Close)
			multi = append(multi, k)
		default:
			return nil, fmt.Errorf("unknown notifier %q", name)
		}
	}
	log.Infof("[Bootstrap] Notifiers: %v", cfg.Notifiers)
	return multi, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warnf("[Bootstrap] close: %v", err)
		}
	}
}
