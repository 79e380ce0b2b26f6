package validation

import (
	"strings"

	"github.com/radhian/order-validation-system/entity"
)

const ReasonSeparator = "; "

// Rule is a single validation check. Violated reports whether the order
// fails the check, in which case Message is added to the order's reason.
type Rule struct {
	Message  string
	Violated func(entity.EnrichedOrder) bool
}

// DefaultRules returns the order validation rules in evaluation order. The
// order only affects how messages are arranged in the reason.
func DefaultRules(allowedCities []string) []Rule {
	cities := make(map[string]bool, len(allowedCities))
	for _, c := range allowedCities {
		cities[c] = true
	}

	return []Rule{
		{
			Message:  "City is not correct",
			Violated: func(o entity.EnrichedOrder) bool { return !cities[o.City] },
		},
		{
			Message:  "Date is not correct",
			Violated: func(o entity.EnrichedOrder) bool { return o.OrderDate == nil },
		},
		{
			Message:  "Price is not correct",
			Violated: func(o entity.EnrichedOrder) bool { return !o.Price.Valid },
		},
		{
			Message:  "Quantity is not correct",
			Violated: func(o entity.EnrichedOrder) bool { return !o.Quantity.Valid },
		},
		{
			Message:  "Product ID is not correct",
			Violated: func(o entity.EnrichedOrder) bool { return o.ProductID == "" },
		},
		{
			// Equal amounts pass; a null on either side never triggers.
			Message: "Price is less than Actual price",
			Violated: func(o entity.EnrichedOrder) bool {
				return o.SaleActualPrice.Valid && o.Sales.Valid &&
					o.SaleActualPrice.Decimal.GreaterThan(o.Sales.Decimal)
			},
		},
	}
}

// Reason evaluates every rule against the order and joins the messages of
// the violated ones. An empty result means the order is valid.
func Reason(order entity.EnrichedOrder, rules []Rule) string {
	var b strings.Builder
	for _, rule := range rules {
		if rule.Violated(order) {
			b.WriteString(rule.Message)
			b.WriteString(ReasonSeparator)
		}
	}
	return strings.TrimSuffix(b.String(), ReasonSeparator)
}

func Classify(records []entity.EnrichedOrder, rules []Rule) []entity.ClassifiedOrder {
	classified := make([]entity.ClassifiedOrder, len(records))
	for i, rec := range records {
		classified[i] = entity.ClassifiedOrder{EnrichedOrder: rec, Reason: Reason(rec, rules)}
	}
	return classified
}
