package validation

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/entity"
)

// LoadProductReferences loads the product master for this run, from the
// object store when ReferenceKey is configured and from ReferencePath
// otherwise.
func (u *validationUsecase) LoadProductReferences(ctx context.Context) ([]entity.ProductReference, error) {
	var (
		data   []byte
		err    error
		source string
	)
	if u.cfg.ReferenceKey != "" {
		source = u.cfg.ReferenceKey
		data, err = u.store.Get(ctx, u.cfg.ReferenceKey)
	} else {
		source = u.cfg.ReferencePath
		data, err = os.ReadFile(u.cfg.ReferencePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrReferenceLoad, source, err)
	}

	refs, err := parseProductReferences(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrReferenceLoad, source, err)
	}
	log.Infof("[Reference] Loaded %d products from %s", len(refs), source)
	return refs, nil
}

func parseProductReferences(data []byte) ([]entity.ProductReference, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIdx, priceIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "product_id":
			if idIdx < 0 {
				idIdx = i
			}
		case "price":
			if priceIdx < 0 {
				priceIdx = i
			}
		}
	}
	if idIdx < 0 || priceIdx < 0 {
		return nil, errors.New("product_id and price columns are required")
	}

	refs := make([]entity.ProductReference, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Warnf("[Reference] Skipping malformed row: %v", parseErr)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idIdx >= len(row) {
			continue
		}

		productID := strings.TrimSpace(row[idIdx])
		if productID == "" || nullTokens[strings.ToLower(productID)] {
			continue
		}
		var rawPrice string
		if priceIdx < len(row) {
			rawPrice = strings.TrimSpace(row[priceIdx])
		}
		if nullTokens[strings.ToLower(rawPrice)] {
			rawPrice = ""
		}
		price, err := parseNullDecimal(rawPrice)
		if err != nil {
			log.Warnf("[Reference] Skipping product %s: invalid price '%s'", productID, rawPrice)
			continue
		}
		refs = append(refs, entity.ProductReference{ProductID: productID, Price: price})
	}
	return refs, nil
}
