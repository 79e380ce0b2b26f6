package validation

import (
	"github.com/radhian/order-validation-system/entity"
	"github.com/radhian/order-validation-system/utils"
	"github.com/shopspring/decimal"
)

// Enrich left-joins orders with the product master on product_id and derives
// SaleActualPrice = Quantity * Price. Orders without a match keep a null
// price. A product listed more than once yields one row per listing.
func Enrich(records []entity.OrderRecord, references []entity.ProductReference) []entity.EnrichedOrder {
	prices := make(map[string][]decimal.NullDecimal, len(references))
	for _, ref := range references {
		key := utils.NormalizeKey(ref.ProductID)
		if key == "" {
			continue
		}
		prices[key] = append(prices[key], ref.Price)
	}

	enriched := make([]entity.EnrichedOrder, 0, len(records))
	for _, rec := range records {
		matches := prices[utils.NormalizeKey(rec.ProductID)]
		if rec.ProductID == "" || len(matches) == 0 {
			enriched = append(enriched, entity.EnrichedOrder{OrderRecord: rec})
			continue
		}
		for _, price := range matches {
			enriched = append(enriched, entity.EnrichedOrder{
				OrderRecord:     rec,
				Price:           price,
				SaleActualPrice: multiply(rec.Quantity, price),
			})
		}
	}
	return enriched
}

func multiply(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Decimal.Mul(b.Decimal))
}
