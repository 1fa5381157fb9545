package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"finbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeValues is an in-memory spreadsheet implementing valuesAPI. Update
// and Clear actually mutate the stored cells so append/delete round
// trips can be asserted through List.
type fakeValues struct {
	sheets  map[string][][]string
	updates []string
	clears  []string
	getErr  error
	updErr  error
}

func (f *fakeValues) Get(sheetName string) ([][]string, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sheets[sheetName], nil
}

func (f *fakeValues) Update(rangeA1 string, row []interface{}) error {
	if f.updErr != nil {
		return f.updErr
	}
	f.updates = append(f.updates, rangeA1)
	sheet, rowIdx, colIdx := f.locate(rangeA1)
	for i, cell := range row {
		f.set(sheet, rowIdx, colIdx+i, fmt.Sprint(cell))
	}
	return nil
}

func (f *fakeValues) Clear(rangeA1 string) error {
	f.clears = append(f.clears, rangeA1)
	sheet, rowIdx, colIdx := f.locate(rangeA1)
	for i := 0; i < 4; i++ {
		f.set(sheet, rowIdx, colIdx+i, "")
	}
	return nil
}

// locate parses ranges of the shape "Sheet!B7:E7" (single-letter columns).
func (f *fakeValues) locate(rangeA1 string) (sheet string, rowIdx, colIdx int) {
	sheet, cells, _ := strings.Cut(rangeA1, "!")
	first, _, _ := strings.Cut(cells, ":")
	colIdx = int(first[0] - 'A')
	row, _ := strconv.Atoi(first[1:])
	return sheet, row - 1, colIdx
}

func (f *fakeValues) set(sheet string, rowIdx, colIdx int, value string) {
	rows := f.sheets[sheet]
	for len(rows) <= rowIdx {
		rows = append(rows, nil)
	}
	for len(rows[rowIdx]) <= colIdx {
		rows[rowIdx] = append(rows[rowIdx], "")
	}
	rows[rowIdx][colIdx] = value
	f.sheets[sheet] = rows
}

func newTestClient(sheets map[string][][]string) (*Client, *fakeValues) {
	fake := &fakeValues{sheets: sheets}
	return newClientWithAPI(fake, zap.NewNop()), fake
}

func summaryFixture() [][]string {
	return [][]string{
		{"", "Бюджет"},
		{"", "Итого", "", "", "", "", "", "Итого"},
		{"", "Еда", "", "", "", "", "", "Работа"},
		{"", "Фактические", "", "", "", "", "", "Предполагаемые"},
		{"", "Транспорт ", "", "", "", "", "", "Подарки"},
		{"", "", "", "", "", "", "", ""},
		{"", "Дом"},
	}
}

func TestClient_FetchCategories(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.Kind
		expected []string
	}{
		{
			name: "expense column with labels and nbsp stripped",
			kind: domain.KindExpense,
			// "Фактические" is a service label, the NBSP in "Транспорт" is
			// trimmed, the empty cell is skipped.
			expected: []string{"Еда", "Транспорт", "Дом"},
		},
		{
			name:     "income column",
			kind:     domain.KindIncome,
			expected: []string{"Работа", "Подарки"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(map[string][][]string{
				summarySheet: summaryFixture(),
			})

			categories, err := client.FetchCategories(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, categories)
		})
	}
}

func TestClient_FetchCategories_UnknownKind(t *testing.T) {
	client, _ := newTestClient(nil)

	_, err := client.FetchCategories(domain.Kind("loan"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestClient_FetchCategories_NoSentinel(t *testing.T) {
	client, _ := newTestClient(map[string][][]string{
		summarySheet: {
			{"", "Бюджет"},
			{"", "Еда"},
		},
	})

	categories, err := client.FetchCategories(domain.KindExpense)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func ledgerFixture() [][]string {
	return [][]string{
		{"Транзакции"},
		{},
		{""},
		{"", "Дата", "Сумма", "Описание", "Категория", "", "Дата", "Сумма", "Описание", "Категория"},
		{"", "15.06.2024", "150,50 р.", "Обед", "Еда", "", "", "", "", ""},
		{"", "", "", "", "", "", "16.06.2024", "50 000,00 р.", "Аванс", "Работа"},
		{"", "17.06.2024", "1 234,56 р.", "", "Транспорт", "", "17.06.2024", "abc", "Подарок", "Подарки"},
	}
}

func TestClient_List(t *testing.T) {
	client, _ := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	txs, err := client.List(domain.KindAny)
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, domain.KindExpense, txs[0].Kind)
	assert.Equal(t, "15.06.2024", txs[0].Date)
	assert.Equal(t, 150.50, txs[0].Amount)
	assert.Equal(t, "Обед", txs[0].Description)
	assert.Equal(t, "Еда", txs[0].Category)
	assert.Equal(t, 5, txs[0].RowIndex)

	assert.Equal(t, domain.KindIncome, txs[1].Kind)
	assert.Equal(t, 50000.0, txs[1].Amount)
	assert.Equal(t, 6, txs[1].RowIndex)

	// A row with both blocks filled yields one record per side.
	assert.Equal(t, domain.KindExpense, txs[2].Kind)
	assert.Equal(t, 1234.56, txs[2].Amount)
	assert.Equal(t, 7, txs[2].RowIndex)
	assert.Equal(t, domain.KindIncome, txs[3].Kind)
	assert.Equal(t, 7, txs[3].RowIndex)
}

func TestClient_List_KindFilter(t *testing.T) {
	client, _ := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	expenses, err := client.List(domain.KindExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	for _, tx := range expenses {
		assert.Equal(t, domain.KindExpense, tx.Kind)
	}

	income, err := client.List(domain.KindIncome)
	require.NoError(t, err)
	require.Len(t, income, 2)
}

func TestClient_List_UnparsableAmountIsZero(t *testing.T) {
	// Zero-on-failure is the documented listing policy: a broken amount
	// cell must not fail the whole listing.
	client, _ := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	txs, err := client.List(domain.KindIncome)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 0.0, txs[1].Amount)
	assert.Equal(t, "Подарки", txs[1].Category)
}

func TestClient_Append(t *testing.T) {
	client, fake := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	tx, err := domain.NewTransaction(domain.KindExpense, "18.06.2024", 99.90, "Кофе", "Еда")
	require.NoError(t, err)

	require.NoError(t, client.Append(tx))

	// Fixture has 7 rows, so the record goes to row 8 in the expense block.
	assert.Equal(t, []string{"Транзакции!B8:E8"}, fake.updates)
	assert.Equal(t, 8, tx.RowIndex)
}

func TestClient_Append_IncomeBlock(t *testing.T) {
	client, fake := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	tx, err := domain.NewTransaction(domain.KindIncome, "18.06.2024", 500, "", "Работа")
	require.NoError(t, err)

	require.NoError(t, client.Append(tx))
	assert.Equal(t, []string{"Транзакции!G8:J8"}, fake.updates)
}

func TestClient_Append_UnknownKind(t *testing.T) {
	client, _ := newTestClient(nil)

	err := client.Append(&domain.Transaction{Kind: domain.Kind("loan")})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestClient_AppendThenList(t *testing.T) {
	client, _ := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	tx, err := domain.NewTransaction(domain.KindExpense, "18.06.2024", 150.50, "Обед", "Еда")
	require.NoError(t, err)
	require.NoError(t, client.Append(tx))

	txs, err := client.List(domain.KindExpense)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	got := txs[len(txs)-1]
	assert.Equal(t, tx.RowIndex, got.RowIndex)
	assert.Equal(t, 150.50, got.Amount)
	assert.Equal(t, "Еда", got.Category)
}

func TestClient_Delete(t *testing.T) {
	client, fake := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	require.NoError(t, client.Delete(5, domain.KindExpense))
	assert.Equal(t, []string{"Транзакции!B5:E5"}, fake.clears)

	// The cleared side is gone from listings; other rows keep their indices.
	txs, err := client.List(domain.KindAny)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.False(t, tx.Kind == domain.KindExpense && tx.RowIndex == 5)
	}
	assert.Equal(t, 6, txs[0].RowIndex)
}

func TestClient_Delete_Idempotent(t *testing.T) {
	client, _ := newTestClient(map[string][][]string{
		ledgerSheet: ledgerFixture(),
	})

	require.NoError(t, client.Delete(5, domain.KindExpense))
	// Clearing already-empty cells is not an error.
	require.NoError(t, client.Delete(5, domain.KindExpense))
}

func TestClient_Delete_InvalidInput(t *testing.T) {
	client, _ := newTestClient(nil)

	assert.ErrorIs(t, client.Delete(5, domain.Kind("loan")), domain.ErrUnknownKind)
	assert.Error(t, client.Delete(0, domain.KindExpense))
}
