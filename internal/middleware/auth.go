package middleware

import (
	"finbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const accessDeniedMessage = "🚫 У вас нет доступа к этому боту.\n\n" +
	"Для получения доступа обратитесь к администратору."

// Access creates middleware enforcing the static user allowlist. Denied
// callbacks are answered with an alert so the button stops spinning.
func Access(access *service.AccessService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if !access.IsAllowed(sender.ID) {
				logger.Info("Access denied",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{
						Text:      "🚫 У вас нет доступа к этому боту.",
						ShowAlert: true,
					})
				}
				return c.Send(accessDeniedMessage)
			}

			return next(c)
		}
	}
}
