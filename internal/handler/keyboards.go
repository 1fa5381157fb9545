package handler

import (
	"fmt"

	"finbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Reply-keyboard button labels; they come back as plain message text and
// are matched verbatim by the text handlers.
const (
	btnCancelText = "❌ Отмена"
	btnSkipText   = "⏭️ Пропустить"
)

const backButtonText = "🔙 Назад"

// deleteButtonLabelLimit caps delete-list button captions, in runes.
const deleteButtonLabelLimit = 50

func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("➕ Добавить трату", cbAddExpense),
			menu.Data("💰 Добавить доход", cbAddIncome),
		),
		menu.Row(
			menu.Data("📊 Статистика", cbShowStats),
			menu.Data("📋 Мои транзакции", cbShowTransactions),
		),
		menu.Row(menu.Data("🗑️ Удалить", cbDeleteMenu)),
		menu.Row(menu.Data("⚙️ Управление", cbShowManagement)),
	)
	return menu
}

func categoriesMarkup(categories []string, kind domain.Kind) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(categories)+1)
	for _, category := range categories {
		rows = append(rows, menu.Row(menu.Data(category, catPayload(kind, category))))
	}
	rows = append(rows, menu.Row(menu.Data(backButtonText, cbBackToMain)))
	menu.Inline(rows...)
	return menu
}

func confirmAddMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✅ Да", cbConfirmAdd),
		menu.Data(btnCancelText, cbCancelAdd),
	))
	return menu
}

func transactionsListMarkup(txs []domain.Transaction) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(txs)+1)
	for _, tx := range txs {
		label := fmt.Sprintf("%s %s - %s - %s",
			tx.Kind.Emoji(), tx.Date, tx.Category, domain.FormatAmount(tx.Amount))
		rows = append(rows, menu.Row(
			menu.Data(truncateLabel(label, deleteButtonLabelLimit), delPayload(tx.RowIndex, tx.Kind)),
		))
	}
	rows = append(rows, menu.Row(menu.Data(backButtonText, cbBackToMain)))
	menu.Inline(rows...)
	return menu
}

func deleteConfirmMarkup(rowIndex int, kind domain.Kind) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("✅ Удалить", confirmDeletePayload(rowIndex, kind)),
		// Cancelling goes back to the deletion list, not the main menu.
		menu.Data(btnCancelText, cbDeleteMenu),
	))
	return menu
}

func statsMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("🏷️ По категориям", cbStatsCategories),
			menu.Data("📋 Общая статистика", cbStatsGeneral),
		),
		menu.Row(menu.Data(backButtonText, cbBackToMain)),
	)
	return menu
}

func managementMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("🔄 Обновить категории", cbRefreshCategories),
			menu.Data("📋 Информация о кеше", cbCacheInfo),
		),
		menu.Row(
			menu.Data("🧹 Очистить кеш", cbClearCache),
			menu.Data("📊 Статус системы", cbSystemStatus),
		),
		menu.Row(menu.Data(backButtonText, cbBackToMain)),
	)
	return menu
}

func backToMainMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data(backButtonText, cbBackToMain)))
	return menu
}

func backToStatsMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data(backButtonText, cbBackToStats)))
	return menu
}

func backToManagementMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data(backButtonText, cbBackToManagement)))
	return menu
}

func cancelReplyMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(btnCancelText)))
	return menu
}

func skipReplyMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(btnSkipText), menu.Text(btnCancelText)))
	return menu
}

func removeKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

func truncateLabel(label string, limit int) string {
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit-3]) + "..."
}
