package handler

import (
	"strings"
	"time"

	"finbot/internal/domain"
	"finbot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free-form text by current dialog position
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") {
		// Commands are handled by their own handlers.
		return nil
	}

	userID := c.Sender().ID
	chatID := c.Chat().ID

	lock := h.sessions.Lock(userID)
	lock.Lock()
	defer lock.Unlock()

	switch h.sessions.Position(userID, chatID) {
	case session.StateEnteringAmount:
		return h.handleAmountInput(c, text)
	case session.StateEnteringDescription:
		return h.handleDescriptionInput(c, text)
	case session.StateConfirming:
		return c.Send("⏳ Ожидается подтверждение транзакции. Используйте кнопки выше.")
	default:
		return c.Send(
			"❓ Не понимаю эту команду. Используйте /menu для возврата в главное меню.",
			mainMenuMarkup(),
		)
	}
}

func (h *Handler) handleAmountInput(c tele.Context, text string) error {
	userID := c.Sender().ID

	if text == btnCancelText {
		return h.cancelDialog(c)
	}

	amount, err := domain.ParseAmount(text)
	if err != nil {
		h.logger.Debug("Rejected amount input",
			zap.String("input", text),
			zap.Int64("user_id", userID),
		)
		return c.Send(
			"❌ Неверный формат суммы. Введите число больше 0.\n\nПримеры: 150, 1500.50, 100,25",
			cancelReplyMarkup(),
		)
	}

	sess := h.sessions.Session(userID)
	sess.Amount = amount

	if err := c.Send("✅ Сумма принята", removeKeyboard()); err != nil {
		return err
	}

	h.sessions.SetPosition(userID, c.Chat().ID, session.StateEnteringDescription)
	return c.Send("📝 Введите описание транзакции:", skipReplyMarkup())
}

func (h *Handler) handleDescriptionInput(c tele.Context, text string) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	if text == btnCancelText {
		return h.cancelDialog(c)
	}

	sess := h.sessions.Session(userID)
	if text == btnSkipText {
		sess.Description = domain.NoDescription
	} else {
		sess.Description = text
	}
	// The transaction is dated when the dialog completes, not when
	// it started.
	sess.Date = time.Now().Format(domain.DateLayout)

	tx, err := domain.NewTransaction(sess.Kind, sess.Date, sess.Amount, sess.Description, sess.Category)
	if err != nil {
		h.logger.Error("Invalid session data building preview",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		h.sessions.Reset(userID, chatID)
		return c.Send(genericErrorMessage, removeKeyboard())
	}

	if err := c.Send("✅ Данные приняты", removeKeyboard()); err != nil {
		return err
	}

	h.sessions.SetPosition(userID, chatID, session.StateConfirming)
	text = "📋 *Подтверждение транзакции*\n\n" + tx.FormatForDisplay() + "\n\nДобавить эту транзакцию?"
	return c.Send(text, tele.ModeMarkdown, confirmAddMarkup())
}

// cancelDialog aborts the dialog from a reply-keyboard cancel button
func (h *Handler) cancelDialog(c tele.Context) error {
	h.sessions.Reset(c.Sender().ID, c.Chat().ID)

	if err := c.Send("❌ Действие отменено", removeKeyboard()); err != nil {
		return err
	}
	return h.sendMainMenu(c)
}
