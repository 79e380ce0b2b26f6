package validation

import (
	"sort"

	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/utils"
)

var (
	CleanColumns    = []string{"order_id", "order_date", "product_id", "quantity", "sales", "city"}
	RejectedColumns = []string{"order_id", "order_date", "product_id", "quantity", "sales", "city", "reason"}
)

// PartitionOrders splits classified orders into the clean and rejected
// partitions, each stably sorted by (order_id, order_date).
func PartitionOrders(records []entity.ClassifiedOrder) (entity.Partition, entity.Partition) {
	clean := entity.Partition{
		Name:    consts.PartitionClean,
		Columns: append([]string(nil), CleanColumns...),
		Rows:    make([]entity.ClassifiedOrder, 0),
	}
	rejected := entity.Partition{
		Name:    consts.PartitionRejected,
		Columns: append([]string(nil), RejectedColumns...),
		Rows:    make([]entity.ClassifiedOrder, 0),
	}

	for _, rec := range records {
		if rec.IsValid() {
			clean.Rows = append(clean.Rows, rec)
		} else {
			rejected.Rows = append(rejected.Rows, rec)
		}
	}

	sortOrders(clean.Rows)
	sortOrders(rejected.Rows)
	return clean, rejected
}

func sortOrders(rows []entity.ClassifiedOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		return compareOrders(rows[i], rows[j]) < 0
	})
}

// compareOrders orders by order_id, then order_date with missing dates last.
func compareOrders(a, b entity.ClassifiedOrder) int {
	if c := utils.CompareIdentifiers(a.OrderID, b.OrderID); c != 0 {
		return c
	}
	switch {
	case a.OrderDate == nil && b.OrderDate == nil:
		return 0
	case a.OrderDate == nil:
		return 1
	case b.OrderDate == nil:
		return -1
	case a.OrderDate.Before(*b.OrderDate):
		return -1
	case a.OrderDate.After(*b.OrderDate):
		return 1
	}
	return 0
}
