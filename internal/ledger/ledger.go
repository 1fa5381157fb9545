// Package ledger defines the gateway to the remote spreadsheet ledger.
package ledger

import "finbot/internal/domain"

// Gateway abstracts the spreadsheet the bot records transactions in.
type Gateway interface {
	// FetchCategories reads the category names configured for a kind from
	// the summary sheet, in sheet order.
	FetchCategories(kind domain.Kind) ([]string, error)

	// Append writes the record into the first free row of its kind's
	// column block and sets the record's RowIndex.
	Append(tx *domain.Transaction) error

	// List scans the ledger and returns records carrying their 1-based
	// row index. Pass domain.KindAny to get both sides.
	List(filter domain.Kind) ([]domain.Transaction, error)

	// Delete clears the cells of the kind's block at the given row. Row
	// indices of other records stay stable; clearing empty cells is fine.
	Delete(rowIndex int, kind domain.Kind) error
}
