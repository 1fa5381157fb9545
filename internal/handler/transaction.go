package handler

import (
	"fmt"
	"strings"

	"finbot/internal/domain"
	"finbot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAddTransaction starts the add dialog for the given kind.
// Categories are loaded before any state changes so a failing ledger
// leaves the user in the main menu.
func (h *Handler) handleAddTransaction(c tele.Context, kind domain.Kind) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	categories, err := h.categories.Categories(kind)
	if err != nil {
		h.logger.Error("Failed to load categories",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
		)
		return h.editOrSend(c, "❌ Не удалось загрузить категории: "+err.Error(), backToMainMarkup())
	}
	if len(categories) == 0 {
		text := fmt.Sprintf("❌ Категории для %q не найдены. Проверьте настройки таблицы.", kind.Label())
		return h.editOrSend(c, text, backToMainMarkup())
	}

	h.sessions.Reset(userID, chatID)
	sess := h.sessions.Session(userID)
	sess.Kind = kind
	h.sessions.SetPosition(userID, chatID, session.StateChoosingCategory)

	text := fmt.Sprintf("Выберите категорию для %s %s:", kind.Emoji(), strings.ToLower(kind.Label()))
	return h.editOrSend(c, text, categoriesMarkup(categories, kind))
}

// handleCategorySelection handles cat_<kind>_<category> callbacks
func (h *Handler) handleCategorySelection(c tele.Context, data string) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	kind, category, err := parseCatPayload(data)
	if err != nil {
		h.logger.Warn("Malformed category payload",
			zap.Error(err),
			zap.String("data", data),
			zap.Int64("user_id", userID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка данных"})
	}

	sess := h.sessions.Session(userID)
	sess.Kind = kind
	sess.Category = category

	if err := h.editOrSend(c, "✅ Выбрана категория: "+category); err != nil {
		return err
	}

	h.sessions.SetPosition(userID, chatID, session.StateEnteringAmount)
	text := fmt.Sprintf("💰 Введите сумму для категории '%s':\n\nПримеры: 150, 1500.50, 100,25", category)
	return c.Send(text, cancelReplyMarkup())
}

// handleConfirmAdd writes the collected transaction to the ledger
func (h *Handler) handleConfirmAdd(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	sess := h.sessions.Session(userID)
	defer h.sessions.Reset(userID, chatID)

	tx, err := domain.NewTransaction(sess.Kind, sess.Date, sess.Amount, sess.Description, sess.Category)
	if err != nil {
		h.logger.Error("Invalid session data on confirm",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		if err := h.editOrSend(c, genericErrorMessage); err != nil {
			return err
		}
		return h.sendMainMenu(c)
	}

	if err := h.transactions.Add(tx); err != nil {
		h.logger.Error("Failed to add transaction",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		if err := h.editOrSend(c, "❌ Ошибка добавления транзакции: "+err.Error()); err != nil {
			return err
		}
		return h.sendMainMenu(c)
	}

	h.logger.Info("Transaction added",
		zap.Int64("user_id", userID),
		zap.String("kind", string(tx.Kind)),
		zap.String("category", tx.Category),
		zap.Float64("amount", tx.Amount),
		zap.Int("row", tx.RowIndex),
	)

	if err := h.editOrSend(c, "✅ Транзакция успешно добавлена!"); err != nil {
		return err
	}
	return h.sendMainMenu(c)
}

// handleCancelAdd aborts the dialog from an inline button
func (h *Handler) handleCancelAdd(c tele.Context) error {
	h.sessions.Reset(c.Sender().ID, c.Chat().ID)

	if err := h.editOrSend(c, "❌ Действие отменено"); err != nil {
		return err
	}
	return h.sendMainMenu(c)
}

// handleBackToMain returns to the main menu, dropping any dialog state
func (h *Handler) handleBackToMain(c tele.Context) error {
	h.sessions.Reset(c.Sender().ID, c.Chat().ID)
	return h.editOrSend(c, mainMenuText, tele.ModeMarkdown, mainMenuMarkup())
}
