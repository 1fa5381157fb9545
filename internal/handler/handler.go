package handler

import (
	"strings"

	"finbot/internal/service"
	"finbot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	mainMenuText = "🏦 *Главное меню*\n\nВыберите действие:"

	genericErrorMessage = "❌ Произошла ошибка. Попробуйте еще раз."
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	categories   *service.CategoryService
	transactions *service.TransactionService
	sessions     *session.Store
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	categories *service.CategoryService,
	transactions *service.TransactionService,
	sessions *session.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		categories:   categories,
		transactions: transactions,
		sessions:     sessions,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/menu", h.handleMenu)

	// Text messages (state-driven dialog input)
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// sendMainMenu sends a fresh main menu message.
func (h *Handler) sendMainMenu(c tele.Context) error {
	return c.Send(mainMenuText, tele.ModeMarkdown, mainMenuMarkup())
}

// editOrSend edits the callback's message, falling back to a new message
// when editing fails, and acknowledges the callback either way.
func (h *Handler) editOrSend(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}

	if err := c.Edit(text, opts...); err != nil {
		// Already edited by another callback; just acknowledge.
		if strings.Contains(err.Error(), "message is not modified") {
			return c.Respond()
		}
		h.logger.Warn("Failed to edit message, sending new",
			zap.Error(err),
			zap.Int64("user_id", c.Sender().ID),
		)
		if err := c.Send(text, opts...); err != nil {
			return err
		}
	}
	return c.Respond()
}
