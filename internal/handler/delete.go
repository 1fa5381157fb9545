package handler

import (
	"fmt"

	"finbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const deleteListLimit = 10

// handleDeleteMenu shows the most recent transactions as delete candidates
func (h *Handler) handleDeleteMenu(c tele.Context) error {
	txs, err := h.transactions.Recent(deleteListLimit)
	if err != nil {
		h.logger.Error("Failed to load transactions for deletion", zap.Error(err))
		return h.editOrSend(c, "❌ Не удалось загрузить транзакции: "+err.Error(), backToMainMarkup())
	}

	if len(txs) == 0 {
		return h.editOrSend(c,
			"🗑️ *Удаление транзакции*\n\n❌ Транзакции не найдены",
			tele.ModeMarkdown, backToMainMarkup(),
		)
	}

	return h.editOrSend(c,
		"🗑️ *Удаление транзакции*\n\nВыберите транзакцию для удаления:",
		tele.ModeMarkdown, transactionsListMarkup(txs),
	)
}

// handleDeleteSelection handles del_<row>_<kind> callbacks
func (h *Handler) handleDeleteSelection(c tele.Context, data string) error {
	rowIndex, kind, err := parseDelPayload(data)
	if err != nil {
		h.logger.Warn("Malformed delete payload",
			zap.Error(err),
			zap.String("data", data),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка данных"})
	}

	tx, err := h.transactions.Find(rowIndex, kind)
	if err != nil {
		h.logger.Error("Failed to look up transaction",
			zap.Error(err),
			zap.Int("row", rowIndex),
		)
		return h.editOrSend(c, "❌ Не удалось загрузить транзакцию: "+err.Error(), backToMainMarkup())
	}
	if tx == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Транзакция не найдена", ShowAlert: true})
	}

	text := fmt.Sprintf(
		"🗑️ *Подтверждение удаления*\n\nВы уверены, что хотите удалить эту транзакцию?\n\n"+
			"%s %s\n📅 Дата: %s\n💰 Сумма: %s\n🏷️ Категория: %s\n📝 Описание: %s",
		tx.Kind.Emoji(), tx.Kind.Label(), tx.Date, domain.FormatAmount(tx.Amount), tx.Category, tx.Description,
	)
	return h.editOrSend(c, text, tele.ModeMarkdown, deleteConfirmMarkup(rowIndex, kind))
}

// handleConfirmDelete handles confirm_delete_<row>_<kind> callbacks
func (h *Handler) handleConfirmDelete(c tele.Context, data string) error {
	userID := c.Sender().ID

	rowIndex, kind, err := parseConfirmDeletePayload(data)
	if err != nil {
		h.logger.Warn("Malformed delete confirmation payload",
			zap.Error(err),
			zap.String("data", data),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка данных"})
	}

	if err := h.transactions.Delete(rowIndex, kind); err != nil {
		h.logger.Error("Failed to delete transaction",
			zap.Error(err),
			zap.Int("row", rowIndex),
			zap.Int64("user_id", userID),
		)
		return h.editOrSend(c,
			"❌ *Ошибка удаления*\n\n"+err.Error(),
			tele.ModeMarkdown, backToMainMarkup(),
		)
	}

	h.logger.Info("Transaction deleted",
		zap.Int("row", rowIndex),
		zap.String("kind", string(kind)),
		zap.Int64("user_id", userID),
	)

	h.sessions.Reset(userID, c.Chat().ID)
	if err := h.editOrSend(c, "✅ *Транзакция удалена*", tele.ModeMarkdown); err != nil {
		return err
	}
	return h.sendMainMenu(c)
}
