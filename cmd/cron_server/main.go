package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gommonlog "github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/bootstrap"
	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/handler"
	"github.com/robfig/cron/v3"
)

type CronWorkerConfig struct {
	Interval time.Duration
	Workers  int
}

func (cfg CronWorkerConfig) startValidationExecutorWorker(ctx context.Context, h *handler.ValidationHandler, workerID int) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		err := h.ValidationExecution(ctx)
		switch {
		case errors.Is(err, handler.ErrNoProcessHandled):
			gommonlog.Debugf("[Worker %d] idle", workerID)
		case err != nil:
			gommonlog.Errorf("[Worker %d] error: %s", workerID, err.Error())
		default:
			gommonlog.Infof("[Worker %d] success", workerID)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

type App struct {
	*bootstrap.App
	Cron *cron.Cron
}

func (a *App) startCronWorker(ctx context.Context, cfg CronWorkerConfig) {
	var wg sync.WaitGroup

	h := handler.NewValidationHandler(a.Usecase)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			gommonlog.Infof("spawn [Worker %d]", workerID)
			cfg.startValidationExecutorWorker(ctx, h, workerID)
		}(i + 1)
	}
	wg.Wait()
}

func (a *App) Initialize(ctx context.Context, cfg config.Config) error {
	base, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	a.App = base

	a.Cron = cron.New(cron.WithLocation(cfg.Location))
	_, err = a.Cron.AddFunc(cfg.RunSchedule, a.scheduleDailyRun)
	return err
}

func (a *App) scheduleDailyRun() {
	batchDate := a.Config.Today()
	logEntry, err := a.Usecase.ProcessValidationInit(batchDate, consts.SystemOperator)
	if err != nil {
		gommonlog.Errorf("[Scheduler] Failed to create run for %s: %v", batchDate.Format(consts.BatchDateLayout), err)
		return
	}
	gommonlog.Infof("[Scheduler] Created run %d for %s", logEntry.ID, batchDate.Format(consts.BatchDateLayout))
}

func (a *App) RunServer(ctx context.Context) {
	if a.Config.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", a.Metrics.Handler())
			gommonlog.Infof("[Metrics] Listening on %s", a.Config.MetricsAddr)
			if err := http.ListenAndServe(a.Config.MetricsAddr, mux); err != nil {
				gommonlog.Errorf("[Metrics] server stopped: %v", err)
			}
		}()
	}

	a.Cron.Start()
	gommonlog.Infof("[Scheduler] Daily run scheduled at %q (%s)", a.Config.RunSchedule, a.Config.Location)
	defer func() { <-a.Cron.Stop().Done() }()

	a.startCronWorker(ctx, CronWorkerConfig{
		Workers:  a.Config.WorkerNumber,
		Interval: a.Config.WorkerInterval(),
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := App{}
	if err := app.Initialize(ctx, cfg); err != nil {
		log.Fatalf("initialize error: %v", err)
	}
	defer app.Close()

	app.RunServer(ctx)
}
