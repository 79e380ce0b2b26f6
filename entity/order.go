package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one row read from an incoming order file.
type OrderRecord struct {
	OrderID   string
	OrderDate *time.Time // nil when the source value could not be parsed
	ProductID string     // empty when absent
	Quantity  decimal.NullDecimal
	Sales     decimal.NullDecimal
	City      string
	SourceKey string
}

// ProductReference is one row of the product master.
type ProductReference struct {
	ProductID string
	Price     decimal.NullDecimal
}

type EnrichedOrder struct {
	OrderRecord
	Price           decimal.NullDecimal
	SaleActualPrice decimal.NullDecimal
}

// ClassifiedOrder carries the accumulated validation failures. An empty
// Reason means the order passed every rule.
type ClassifiedOrder struct {
	EnrichedOrder
	Reason string
}

func (o ClassifiedOrder) IsValid() bool {
	return o.Reason == ""
}

type Partition struct {
	Name    string
	Columns []string
	Rows    []ClassifiedOrder
}

// SourceFileReport records what a single incoming file contributed.
type SourceFileReport struct {
	Key         string
	RowsRead    int
	RowsSkipped int
	Err         error
}

type SourceReadResult struct {
	Records []OrderRecord
	Files   []SourceFileReport
}

type Summary struct {
	BatchDate    string `json:"batch_date"`
	Total        int    `json:"total"`
	Passed       int    `json:"passed"`
	Failed       int    `json:"failed"`
	FilesRead    int    `json:"files_read"`
	FilesSkipped int    `json:"files_skipped"`
	RowsSkipped  int    `json:"rows_skipped"`
	CleanKey     string `json:"clean_key"`
	RejectedKey  string `json:"rejected_key"`
}

type BatchResult struct {
	Summary  Summary
	Clean    Partition
	Rejected Partition
	Files    []SourceFileReport
}

type ProcessValidationRequest struct {
	BatchDate string `json:"batch_date"`
	Operator  string `json:"operator"`
}

type ProcessMetadata struct {
	BatchDate string `json:"batch_date"`
}
