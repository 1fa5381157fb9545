package handler

import (
	"strings"
	"unicode"

	"finbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Buttons built with markup.Data carry the payload in Unique;
	// manually crafted callbacks carry it in Data.
	data := cleanCallbackData(callback.Unique)
	if data == "" {
		data = cleanCallbackData(callback.Data)
	}

	userID := c.Sender().ID
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	// One callback per user at a time: dialog state transitions
	// must not interleave.
	lock := h.sessions.Lock(userID)
	lock.Lock()
	defer lock.Unlock()

	switch data {
	case cbAddExpense:
		return h.handleAddTransaction(c, domain.KindExpense)
	case cbAddIncome:
		return h.handleAddTransaction(c, domain.KindIncome)
	case cbConfirmAdd:
		return h.handleConfirmAdd(c)
	case cbCancelAdd:
		return h.handleCancelAdd(c)
	case cbBackToMain:
		return h.handleBackToMain(c)
	case cbShowStats, cbBackToStats:
		return h.handleShowStats(c)
	case cbStatsCategories:
		return h.handleCategoryStats(c)
	case cbStatsGeneral:
		return h.handleGeneralStats(c)
	case cbShowTransactions:
		return h.handleShowTransactions(c)
	case cbDeleteMenu:
		return h.handleDeleteMenu(c)
	case cbShowManagement, cbBackToManagement:
		return h.handleShowManagement(c)
	case cbRefreshCategories:
		return h.handleRefreshCategories(c)
	case cbCacheInfo:
		return h.handleCacheInfo(c)
	case cbClearCache:
		return h.handleClearCache(c)
	case cbSystemStatus:
		return h.handleSystemStatus(c)
	}

	// Dynamic buttons: confirm_delete_ must be checked before del_
	// since prefixes overlap in spirit, and cat_ carries the category.
	switch {
	case strings.HasPrefix(data, confirmDeletePrefix):
		return h.handleConfirmDelete(c, data)
	case strings.HasPrefix(data, delPrefix):
		return h.handleDeleteSelection(c, data)
	case strings.HasPrefix(data, catPrefix):
		return h.handleCategorySelection(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.Int64("user_id", userID),
	)
	return c.Respond()
}
