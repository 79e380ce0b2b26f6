package validation

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var requiredOrderColumns = []string{"order_id", "order_date", "product_id", "quantity", "sales", "city"}

// Values treated as missing, in addition to the empty string.
var nullTokens = map[string]bool{
	"na": true, "n/a": true, "nan": true, "-nan": true, "null": true, "none": true, "#n/a": true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (u *validationUsecase) incomingPrefix(batchDate time.Time) string {
	return u.cfg.IncomingPrefix + batchDate.Format(consts.BatchFolderLayout) + "/"
}

func (u *validationUsecase) listIncomingKeys(ctx context.Context, batchDate time.Time) []string {
	prefix := u.incomingPrefix(batchDate)
	log.Infof("[SourceReader] Checking prefix: %s", prefix)

	keys, err := u.store.List(ctx, prefix)
	if err != nil {
		log.Errorf("[SourceReader] Error listing CSV files: %v", err)
		return nil
	}

	csvKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasSuffix(strings.ToLower(key), ".csv") {
			csvKeys = append(csvKeys, key)
		}
	}
	if len(csvKeys) == 0 {
		log.Warnf("[SourceReader] No files found under %s", prefix)
	}
	return csvKeys
}

// ReadIncomingFiles reads every CSV file stored for batchDate and returns the
// concatenated records. Listing, file and row failures are logged and
// skipped; they never fail the batch.
func (u *validationUsecase) ReadIncomingFiles(ctx context.Context, batchDate time.Time) entity.SourceReadResult {
	keys := u.listIncomingKeys(ctx, batchDate)
	result := entity.SourceReadResult{
		Records: make([]entity.OrderRecord, 0),
		Files:   make([]entity.SourceFileReport, len(keys)),
	}
	if len(keys) == 0 {
		return result
	}

	parsed := make([][]entity.OrderRecord, len(keys))

	limit := utils.Min(u.cfg.SourceReadWorkers, len(keys))
	if limit < 1 {
		limit = 1
	}
	var group errgroup.Group
	group.SetLimit(limit)
	for i, key := range keys {
		i, key := i, key
		group.Go(func() error {
			report := entity.SourceFileReport{Key: key}
			defer func() { result.Files[i] = report }()

			log.Infof("[SourceReader] Reading %s", key)
			data, err := u.store.Get(ctx, key)
			if err != nil {
				report.Err = err
				log.Errorf("[SourceReader] Failed to read file %s: %v", key, err)
				return nil
			}

			records, skipped, err := parseOrderFile(key, data)
			if err != nil {
				report.Err = err
				log.Errorf("[SourceReader] Failed to parse file %s: %v", key, err)
				return nil
			}
			report.RowsRead = len(records)
			report.RowsSkipped = skipped
			parsed[i] = records
			log.Infof("[SourceReader] Parsed %s: %d rows, %d skipped", key, len(records), skipped)
			return nil
		})
	}
	group.Wait()

	for _, records := range parsed {
		result.Records = append(result.Records, records...)
	}
	return result
}

// parseOrderFile parses one incoming CSV file. Malformed rows are dropped and
// counted; an error is returned only when the file as a whole is unusable.
func parseOrderFile(key string, data []byte) ([]entity.OrderRecord, int, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, errors.New("file is empty")
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range requiredOrderColumns {
		if _, ok := columns[name]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", name)
		}
	}

	records := make([]entity.OrderRecord, 0)
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Debugf("[SourceReader] Skipping malformed row in %s: %v", key, parseErr)
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			log.Debugf("[SourceReader] Skipping row at line %d in %s: %d fields, expected %d", line, key, len(row), len(header))
			skipped++
			continue
		}

		record, err := buildOrderRecord(row, columns)
		if err != nil {
			line, _ := reader.FieldPos(0)
			log.Debugf("[SourceReader] Skipping row at line %d in %s: %v", line, key, err)
			skipped++
			continue
		}
		record.SourceKey = key
		records = append(records, record)
	}
	return records, skipped, nil
}

func buildOrderRecord(row []string, columns map[string]int) (entity.OrderRecord, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if nullTokens[strings.ToLower(v)] {
			return ""
		}
		return v
	}

	quantity, err := parseNullDecimal(field("quantity"))
	if err != nil {
		return entity.OrderRecord{}, fmt.Errorf("invalid quantity: %w", err)
	}
	sales, err := parseNullDecimal(field("sales"))
	if err != nil {
		return entity.OrderRecord{}, fmt.Errorf("invalid sales: %w", err)
	}

	record := entity.OrderRecord{
		OrderID:   field("order_id"),
		ProductID: field("product_id"),
		Quantity:  quantity,
		Sales:     sales,
		City:      field("city"),
	}
	if date, ok := utils.ParseMixedDate(field("order_date")); ok {
		record.OrderDate = &date
	}
	return record, nil
}

func parseNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
