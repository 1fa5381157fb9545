package handler

import (
	"fmt"
	"strings"

	"finbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	recentListLimit    = 10
	statsCategoryLimit = 10
)

// handleShowStats shows the statistics submenu
func (h *Handler) handleShowStats(c tele.Context) error {
	return h.editOrSend(c,
		"📊 *Статистика*\n\nВыберите тип статистики:",
		tele.ModeMarkdown, statsMarkup(),
	)
}

// handleCategoryStats shows per-category expense totals
func (h *Handler) handleCategoryStats(c tele.Context) error {
	stats, err := h.transactions.GetStats()
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		return h.editOrSend(c, "❌ Не удалось загрузить статистику: "+err.Error(), backToStatsMarkup())
	}

	if len(stats.ByCategory) == 0 {
		return h.editOrSend(c,
			"📊 *Статистика по категориям*\n\n❌ Данные не найдены",
			tele.ModeMarkdown, backToStatsMarkup(),
		)
	}

	var b strings.Builder
	b.WriteString("📊 *Статистика по категориям*\n\n")
	for i, ct := range stats.ByCategory {
		if i >= statsCategoryLimit {
			break
		}
		fmt.Fprintf(&b, "🏷️ %s: %s\n", ct.Category, domain.FormatAmount(ct.Total))
	}
	return h.editOrSend(c, b.String(), tele.ModeMarkdown, backToStatsMarkup())
}

// handleGeneralStats shows overall totals and the balance
func (h *Handler) handleGeneralStats(c tele.Context) error {
	stats, err := h.transactions.GetStats()
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		return h.editOrSend(c, "❌ Не удалось загрузить статистику: "+err.Error(), backToStatsMarkup())
	}

	text := fmt.Sprintf(
		"📋 *Общая статистика*\n\n💸 Всего расходов: %s\n💰 Всего доходов: %s\n🏦 Баланс: %s\n\n📊 Количество транзакций: %d",
		domain.FormatAmount(stats.TotalExpense),
		domain.FormatAmount(stats.TotalIncome),
		domain.FormatAmount(stats.Balance),
		stats.Count,
	)
	return h.editOrSend(c, text, tele.ModeMarkdown, backToStatsMarkup())
}

// handleShowTransactions lists the most recent transactions
func (h *Handler) handleShowTransactions(c tele.Context) error {
	txs, err := h.transactions.Recent(recentListLimit)
	if err != nil {
		h.logger.Error("Failed to load recent transactions", zap.Error(err))
		return h.editOrSend(c, "❌ Не удалось загрузить транзакции: "+err.Error(), backToMainMarkup())
	}

	if len(txs) == 0 {
		return h.editOrSend(c,
			"📋 *Последние транзакции*\n\n❌ Транзакции не найдены",
			tele.ModeMarkdown, backToMainMarkup(),
		)
	}

	var b strings.Builder
	b.WriteString("📋 *Последние транзакции*\n\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "%s %s - %s\n   %s - %s\n\n",
			tx.Kind.Emoji(), tx.Date, domain.FormatAmount(tx.Amount), tx.Category, tx.Description)
	}
	return h.editOrSend(c, b.String(), tele.ModeMarkdown, backToMainMarkup())
}
