package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is a transaction kind: money spent or money received.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"

	// KindAny is valid only as a listing filter, never on a record.
	KindAny Kind = ""
)

// Validation errors produced by NewTransaction and ParseAmount.
var (
	ErrUnknownKind   = errors.New("unknown transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

// DateLayout is the textual date form used across the ledger.
const DateLayout = "02.01.2006"

// NoDescription substitutes for a skipped description input.
const NoDescription = "Без описания"

// ParseKind converts a wire/payload string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindExpense, KindIncome:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is a concrete transaction kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Label returns the user-facing name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindExpense:
		return "Расходы"
	case KindIncome:
		return "Доходы"
	}
	return string(k)
}

// Emoji returns the marker shown next to records of this kind.
func (k Kind) Emoji() string {
	if k == KindIncome {
		return "💰"
	}
	return "💸"
}

// Transaction is a single validated ledger entry.
type Transaction struct {
	Kind        Kind
	Date        string // DD.MM.YYYY
	Amount      float64
	Description string
	Category    string
	RowIndex    int // 1-based sheet row, 0 until persisted
}

// NewTransaction validates all fields and builds a record. An empty
// description is normalized to NoDescription.
func NewTransaction(kind Kind, date string, amount float64, description, category string) (*Transaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrEmptyCategory
	}
	if strings.TrimSpace(description) == "" {
		description = NoDescription
	}
	return &Transaction{
		Kind:        kind,
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    category,
	}, nil
}

// FormatForDisplay renders the record for chat output.
func (t *Transaction) FormatForDisplay() string {
	return fmt.Sprintf("%s %s | %s | %s\n📝 %s",
		t.Kind.Emoji(), t.Date, FormatAmount(t.Amount), t.Category, t.Description)
}

// ParseAmount parses user amount input. A comma decimal separator is
// accepted alongside a dot; the value must be finite and strictly positive.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatAmount renders a ruble amount with a comma decimal separator and
// space-grouped thousands: 1234.5 -> "1 234,50 р."
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var b strings.Builder
	n := len(intPart)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}
	return sign + b.String() + "," + fracPart + " р."
}
