// Package csvimport turns an uploaded CSV inventory sheet into product
// records. The first row names the columns using the product JSON names;
// unknown columns are ignored and absent ones stay empty.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
)

const IDColumn = "_id"

var (
	ErrEmpty        = fmt.Errorf("csv has no data rows: %w", common.ErrorValidation)
	ErrNoKnownField = fmt.Errorf("csv header names no product field: %w", common.ErrorValidation)
	ErrInvalidUTF8  = fmt.Errorf("csv is not valid UTF-8: %w", common.ErrorValidation)
)

type setter func(p *models.Product, v string)

var columns = map[string]setter{
	IDColumn:          func(p *models.Product, v string) { p.ID = v },
	"Seed_RepDate":    func(p *models.Product, v string) { p.RepDate = v },
	"Seed_Year":       func(p *models.Product, v string) { p.Year = v },
	"Seeds_YearWeek":  func(p *models.Product, v string) { p.YearWeek = v },
	"Seed_Varity":     func(p *models.Product, v string) { p.Variety = v },
	"Seed_RDCSD":      func(p *models.Product, v string) { p.RDCSD = v },
	"Seed_Stock2Sale": func(p *models.Product, v string) { p.StockToSale = v },
	"Seed_Season":     func(p *models.Product, v string) { p.Season = v },
	"Seed_Crop_Year":  func(p *models.Product, v string) { p.CropYear = v },
}

// Decode reads every row of r. Records keep the _id column value when the
// sheet has one; otherwise ID is left empty for the caller to assign.
// Malformed input wraps common.ErrorValidation.
func Decode(r io.Reader) ([]*models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read csv header: %v: %w", err, common.ErrorValidation)
	}

	setters := make([]setter, len(header))
	known := 0
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if set, ok := columns[name]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return nil, ErrNoKnownField
	}

	var result []*models.Product
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %v: %w", err, common.ErrorValidation)
		}

		p := &models.Product{}
		for i, v := range record {
			if !utf8.ValidString(v) {
				line, _ := reader.FieldPos(i)
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, ErrInvalidUTF8)
			}
			if set := setters[i]; set != nil {
				set(p, strings.TrimSpace(v))
			}
		}
		result = append(result, p)
	}

	if len(result) == 0 {
		return nil, ErrEmpty
	}

	return result, nil
}
