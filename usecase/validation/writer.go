package validation

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
	"github.com/shopspring/decimal"
)

func outputKey(prefix string, batchDate time.Time, fileName string) string {
	return prefix + batchDate.Format(consts.BatchFolderLayout) + "/" + fileName
}

// EncodePartition renders a partition as CSV with a header row and the
// partition's columns in order.
func EncodePartition(p entity.Partition) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(p.Columns); err != nil {
		return nil, err
	}
	row := make([]string, len(p.Columns))
	for _, rec := range p.Rows {
		for i, col := range p.Columns {
			row[i] = columnValue(rec, col)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnValue(rec entity.ClassifiedOrder, column string) string {
	switch column {
	case "order_id":
		return rec.OrderID
	case "order_date":
		if rec.OrderDate == nil {
			return ""
		}
		return rec.OrderDate.Format(consts.BatchDateLayout)
	case "product_id":
		return rec.ProductID
	case "quantity":
		return formatNullDecimal(rec.Quantity)
	case "sales":
		return formatNullDecimal(rec.Sales)
	case "city":
		return rec.City
	case "price":
		return formatNullDecimal(rec.Price)
	case "sale_actual_price":
		return formatNullDecimal(rec.SaleActualPrice)
	case "reason":
		return rec.Reason
	}
	return ""
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func (u *validationUsecase) writePartition(ctx context.Context, p entity.Partition, key string) error {
	body, err := EncodePartition(p)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPartitionWrite, p.Name, err)
	}
	if err := u.store.Put(ctx, key, body, "text/csv"); err != nil {
		return fmt.Errorf("%w: %v", ErrPartitionWrite, err)
	}
	log.Infof("[Writer] Uploaded %s partition (%d rows) to %s", p.Name, len(p.Rows), key)
	return nil
}
