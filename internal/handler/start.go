package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const welcomeText = "👋 Привет! Я помогу вести учет финансов в Google Таблице.\n\n" +
	"💸 Добавляйте расходы и доходы\n" +
	"📊 Смотрите статистику\n" +
	"🗑 Удаляйте ошибочные записи\n\n" +
	"Используйте /menu для вызова главного меню."

// handleStart handles /start and /help commands
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.sessions.Reset(userID, c.Chat().ID)

	if err := c.Send(welcomeText); err != nil {
		return err
	}
	return h.sendMainMenu(c)
}

// handleMenu handles /menu command
func (h *Handler) handleMenu(c tele.Context) error {
	h.sessions.Reset(c.Sender().ID, c.Chat().ID)
	return h.sendMainMenu(c)
}
