package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/radhian/order-validation-system/bootstrap"
	"github.com/radhian/order-validation-system/config"
	"github.com/radhian/order-validation-system/consts"
)

// Runs a single batch and exits; defaults to today's date in the configured timezone.
func main() {
	dateFlag := flag.String("date", "", "batch date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	batchDate := cfg.Today()
	if *dateFlag != "" {
		batchDate, err = time.ParseInLocation(consts.BatchDateLayout, *dateFlag, cfg.Location)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initialize error: %v", err)
	}
	defer app.Close()

	logEntry, err := app.Usecase.ProcessValidationInit(batchDate, consts.SystemOperator)
	if err != nil {
		log.Fatalf("create run: %v", err)
	}

	if err := app.Usecase.ProcessValidationJob(ctx, logEntry.ID); err != nil {
		app.Close()
		log.Fatalf("run %d failed: %v", logEntry.ID, err)
	}
	log.Printf("run %d finished", logEntry.ID)
}
