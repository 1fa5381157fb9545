// Package sheets implements the ledger gateway on top of Google Sheets.
//
// The spreadsheet has two views: a summary sheet listing category names
// below a sentinel row, and a ledger sheet with two 4-column blocks
// (expenses in B-E, income in G-J) holding date, amount, description and
// category per record.
package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"finbot/internal/domain"
	"finbot/internal/ledger"

	"go.uber.org/zap"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	summarySheet = "Сводка"
	ledgerSheet  = "Транзакции"

	// categorySentinel marks the summary row after which category names begin.
	categorySentinel = "Итого"

	// ledgerDataRow is the first 1-based ledger row that holds record data.
	ledgerDataRow = 5
)

// serviceLabels are summary cells that are never category names.
var serviceLabels = map[string]struct{}{
	"Итого":          {},
	"Предполагаемые": {},
	"Фактические":    {},
}

// block describes where a kind's data lives in the spreadsheet.
type block struct {
	dateCol    int    // 0-based offset of the date cell in a ledger row
	rangeFmt   string // A1 range of the 4-cell block, parameterized by row
	summaryCol int    // 0-based category column in the summary sheet
}

func kindBlock(kind domain.Kind) (block, error) {
	switch kind {
	case domain.KindExpense:
		return block{dateCol: 1, rangeFmt: ledgerSheet + "!B%d:E%d", summaryCol: 1}, nil
	case domain.KindIncome:
		return block{dateCol: 6, rangeFmt: ledgerSheet + "!G%d:J%d", summaryCol: 7}, nil
	}
	return block{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// valuesAPI is the thin slice of the Sheets values API the client needs.
type valuesAPI interface {
	Get(sheetName string) ([][]string, error)
	Update(rangeA1 string, row []interface{}) error
	Clear(rangeA1 string) error
}

// Client is the Google Sheets ledger gateway.
type Client struct {
	api    valuesAPI
	logger *zap.Logger
}

var _ ledger.Gateway = (*Client)(nil)

// NewClient creates a gateway over an authenticated Sheets service.
func NewClient(svc *gsheets.Service, spreadsheetID string, logger *zap.Logger) *Client {
	return &Client{
		api:    &googleValues{svc: svc, spreadsheetID: spreadsheetID},
		logger: logger,
	}
}

func newClientWithAPI(api valuesAPI, logger *zap.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// FetchCategories reads the category names for a kind from the summary
// sheet: everything in the kind's column below the sentinel row, minus
// empties and service labels.
func (c *Client) FetchCategories(kind domain.Kind) ([]string, error) {
	b, err := kindBlock(kind)
	if err != nil {
		return nil, err
	}

	data, err := c.api.Get(summarySheet)
	if err != nil {
		return nil, err
	}

	start := -1
	for i, row := range data {
		if len(row) > 1 && row[1] == categorySentinel {
			start = i + 1
			break
		}
	}
	if start == -1 {
		c.logger.Warn("Sentinel row not found in summary sheet",
			zap.String("sentinel", categorySentinel),
		)
		return nil, nil
	}

	var categories []string
	for _, row := range data[start:] {
		if len(row) <= b.summaryCol {
			continue
		}
		name := strings.TrimSpace(strings.ReplaceAll(row[b.summaryCol], " ", " "))
		if name == "" {
			continue
		}
		if _, service := serviceLabels[name]; service {
			continue
		}
		categories = append(categories, name)
	}
	return categories, nil
}

// Append writes the record into the first row past the current ledger
// data, inside its kind's column block, and sets RowIndex.
func (c *Client) Append(tx *domain.Transaction) error {
	b, err := kindBlock(tx.Kind)
	if err != nil {
		return err
	}

	data, err := c.api.Get(ledgerSheet)
	if err != nil {
		return err
	}
	row := len(data) + 1

	cells := []interface{}{tx.Date, tx.Amount, tx.Description, tx.Category}
	if err := c.api.Update(fmt.Sprintf(b.rangeFmt, row, row), cells); err != nil {
		return err
	}
	tx.RowIndex = row

	c.logger.Info("Transaction appended",
		zap.String("kind", string(tx.Kind)),
		zap.String("category", tx.Category),
		zap.Float64("amount", tx.Amount),
		zap.Int("row", row),
	)
	return nil
}

// List scans the ledger from the data start row and emits a record per
// side whose date, amount and category cells are all non-empty. Deleted
// (cleared) rows leave gaps and are skipped; records carry their 1-based
// row index.
func (c *Client) List(filter domain.Kind) ([]domain.Transaction, error) {
	if filter != domain.KindAny && !filter.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, filter)
	}

	data, err := c.api.Get(ledgerSheet)
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction
	for i := ledgerDataRow - 1; i < len(data); i++ {
		for _, kind := range []domain.Kind{domain.KindExpense, domain.KindIncome} {
			if filter != domain.KindAny && filter != kind {
				continue
			}
			if tx, ok := c.rowRecord(data[i], i+1, kind); ok {
				txs = append(txs, tx)
			}
		}
	}
	return txs, nil
}

func (c *Client) rowRecord(row []string, rowIndex int, kind domain.Kind) (domain.Transaction, bool) {
	b, _ := kindBlock(kind)
	if len(row) <= b.dateCol+3 {
		return domain.Transaction{}, false
	}
	date, amount, description, category :=
		row[b.dateCol], row[b.dateCol+1], row[b.dateCol+2], row[b.dateCol+3]
	if date == "" || amount == "" || category == "" {
		return domain.Transaction{}, false
	}
	return domain.Transaction{
		Kind:        kind,
		Date:        date,
		Amount:      c.parseCellAmount(amount, rowIndex),
		Description: description,
		Category:    category,
		RowIndex:    rowIndex,
	}, true
}

// Delete clears the 4-cell block of a kind at the given row. Other rows
// keep their indices; clearing already-empty cells succeeds.
func (c *Client) Delete(rowIndex int, kind domain.Kind) error {
	b, err := kindBlock(kind)
	if err != nil {
		return err
	}
	if rowIndex < 1 {
		return fmt.Errorf("invalid row index: %d", rowIndex)
	}

	if err := c.api.Clear(fmt.Sprintf(b.rangeFmt, rowIndex, rowIndex)); err != nil {
		return err
	}

	c.logger.Info("Transaction deleted",
		zap.String("kind", string(kind)),
		zap.Int("row", rowIndex),
	)
	return nil
}

// amountCleaner strips the currency suffix, grouping spaces and NBSP
// artifacts, and normalizes the comma decimal separator.
var amountCleaner = strings.NewReplacer("р.", "", " ", "", " ", "", ",", ".")

// parseCellAmount normalizes a ledger amount cell. Unparsable cells are
// normalized to zero instead of failing the whole listing; that policy is
// deliberate and the warning makes the bad cell findable.
func (c *Client) parseCellAmount(cell string, rowIndex int) float64 {
	v, err := strconv.ParseFloat(amountCleaner.Replace(cell), 64)
	if err != nil {
		c.logger.Warn("Unparsable amount cell, normalizing to zero",
			zap.String("cell", cell),
			zap.Int("row", rowIndex),
		)
		return 0
	}
	return v
}

// googleValues adapts the Sheets v4 service to valuesAPI.
type googleValues struct {
	svc           *gsheets.Service
	spreadsheetID string
}

func (g *googleValues) Get(sheetName string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheetName).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (g *googleValues) Update(rangeA1 string, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rangeA1, vr).
		ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to update range %q: %w", rangeA1, err)
	}
	return nil
}

func (g *googleValues) Clear(rangeA1 string) error {
	_, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, rangeA1, &gsheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %q: %w", rangeA1, err)
	}
	return nil
}
