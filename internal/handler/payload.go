package handler

import (
	"fmt"
	"strconv"
	"strings"

	"finbot/internal/domain"
)

// Callback payload alphabet. These strings ride inside button callback
// data and must round-trip through the parsers below unambiguously.
const (
	cbAddExpense        = "add_expense"
	cbAddIncome         = "add_income"
	cbConfirmAdd        = "confirm_add"
	cbCancelAdd         = "cancel_add"
	cbBackToMain        = "back_to_main"
	cbShowStats         = "show_stats"
	cbBackToStats       = "back_to_stats"
	cbShowTransactions  = "show_transactions"
	cbStatsCategories   = "stats_categories"
	cbStatsGeneral      = "stats_general"
	cbDeleteMenu        = "delete_transaction"
	cbShowManagement    = "show_management"
	cbRefreshCategories = "refresh_categories"
	cbCacheInfo         = "cache_info"
	cbClearCache        = "clear_cache"
	cbSystemStatus      = "system_status"
	cbBackToManagement  = "back_to_management"

	// Dynamic payload prefixes. confirmDeletePrefix must be matched
	// before delPrefix-style checks so that the two stay unambiguous.
	catPrefix           = "cat_"
	delPrefix           = "del_"
	confirmDeletePrefix = "confirm_delete_"
)

// catPayload encodes a category button: cat_<kind>_<category>.
func catPayload(kind domain.Kind, category string) string {
	return catPrefix + string(kind) + "_" + category
}

// parseCatPayload decodes cat_<kind>_<category>. The category itself may
// contain underscores, so only the first two separators split.
func parseCatPayload(data string) (domain.Kind, string, error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", "", fmt.Errorf("malformed category payload: %q", data)
	}
	kind, err := domain.ParseKind(parts[1])
	if err != nil {
		return "", "", err
	}
	return kind, parts[2], nil
}

// delPayload encodes a deletion candidate: del_<row>_<kind>.
func delPayload(rowIndex int, kind domain.Kind) string {
	return fmt.Sprintf("%s%d_%s", delPrefix, rowIndex, kind)
}

func parseDelPayload(data string) (int, domain.Kind, error) {
	return parseRowKind(strings.TrimPrefix(data, delPrefix))
}

// confirmDeletePayload encodes a confirmed deletion: confirm_delete_<row>_<kind>.
func confirmDeletePayload(rowIndex int, kind domain.Kind) string {
	return fmt.Sprintf("%s%d_%s", confirmDeletePrefix, rowIndex, kind)
}

func parseConfirmDeletePayload(data string) (int, domain.Kind, error) {
	return parseRowKind(strings.TrimPrefix(data, confirmDeletePrefix))
}

func parseRowKind(s string) (int, domain.Kind, error) {
	rowStr, kindStr, ok := strings.Cut(s, "_")
	if !ok {
		return 0, "", fmt.Errorf("malformed row payload: %q", s)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 1 {
		return 0, "", fmt.Errorf("malformed row index: %q", rowStr)
	}
	kind, err := domain.ParseKind(kindStr)
	if err != nil {
		return 0, "", err
	}
	return row, kind, nil
}
