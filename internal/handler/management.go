package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleShowManagement shows the bot management submenu
func (h *Handler) handleShowManagement(c tele.Context) error {
	return h.editOrSend(c,
		"⚙️ *Управление ботом*\n\nВыберите действие:",
		tele.ModeMarkdown, managementMarkup(),
	)
}

// handleRefreshCategories re-reads categories from the spreadsheet,
// bypassing the cache. The intermediate edit tells the user the bot is
// busy while the sheet round trip runs.
func (h *Handler) handleRefreshCategories(c tele.Context) error {
	_ = c.Edit("🔄 *Обновление категорий*\n\n⏳ Загружаем категории из таблицы...", tele.ModeMarkdown)

	result, err := h.categories.Refresh()
	if err != nil {
		h.logger.Error("Failed to refresh categories", zap.Error(err))
		return h.editOrSend(c,
			"❌ *Ошибка обновления*\n\n"+err.Error(),
			tele.ModeMarkdown, backToManagementMarkup(),
		)
	}

	h.logger.Info("Categories refreshed",
		zap.Int("expense", result.ExpenseCount),
		zap.Int("income", result.IncomeCount),
		zap.Int64("user_id", c.Sender().ID),
	)

	text := fmt.Sprintf(
		"✅ *Категории обновлены!*\n\n📊 Статистика обновления:\n"+
			"• 💸 Расходы: %d категорий\n• 💰 Доходы: %d категорий\n• 📋 Всего: %d категорий",
		result.ExpenseCount, result.IncomeCount, result.Total,
	)
	return h.editOrSend(c, text, tele.ModeMarkdown, backToManagementMarkup())
}

// handleCacheInfo reports the state of the category cache file
func (h *Handler) handleCacheInfo(c tele.Context) error {
	info := h.categories.CacheInfo()

	var text string
	switch {
	case !info.Exists:
		text = "❌ *Кеш не найден*\n\nФайл кеша категорий отсутствует. Он будет создан при следующей загрузке категорий."
	case info.Corrupt:
		text = "⚠️ *Кеш поврежден*\n\nНеверный формат кеша."
		if info.Total > 0 {
			text += fmt.Sprintf("\n📋 Категорий в файле: %d", info.Total)
		}
	default:
		status := "🟢 Актуален"
		if info.Expired {
			status = "🔴 Истек"
		}
		text = fmt.Sprintf(
			"📋 *Информация о кеше*\n\nСтатус: %s\n⏰ Возраст: %.1f ч.\n📅 Создан: %s\n\n"+
				"📊 Всего категорий: %d\n🏷️ Типы: %s",
			status,
			info.AgeHours,
			info.CreatedAt.Format("02.01.2006 15:04"),
			info.Total,
			strings.Join(info.Kinds, ", "),
		)
	}
	return h.editOrSend(c, text, tele.ModeMarkdown, backToManagementMarkup())
}

// handleClearCache removes the category cache file
func (h *Handler) handleClearCache(c tele.Context) error {
	if err := h.categories.ClearCache(); err != nil {
		h.logger.Error("Failed to clear cache", zap.Error(err))
		return h.editOrSend(c,
			"❌ *Ошибка очистки кеша*\n\n"+err.Error(),
			tele.ModeMarkdown, backToManagementMarkup(),
		)
	}
	return h.editOrSend(c,
		"✅ *Кеш очищен*\n\nКатегории будут загружены из таблицы при следующем запросе.",
		tele.ModeMarkdown, backToManagementMarkup(),
	)
}

// handleSystemStatus reports spreadsheet connectivity, cache state and
// the number of active dialog sessions
func (h *Handler) handleSystemStatus(c tele.Context) error {
	sheetStatus := "🟢 Подключен"
	if err := h.categories.Ping(); err != nil {
		h.logger.Warn("Spreadsheet ping failed", zap.Error(err))
		sheetStatus = "🔴 Ошибка подключения"
	}

	info := h.categories.CacheInfo()
	cacheStatus := "🟢 Актуален"
	switch {
	case !info.Exists || info.Corrupt:
		cacheStatus = "🔴 Отсутствует"
	case info.Expired:
		cacheStatus = "🟡 Истек"
	}

	text := fmt.Sprintf(
		"🖥️ *Статус системы*\n\n📊 Google Таблица: %s\n💾 Кеш категорий: %s\n👥 Активных сессий: %d",
		sheetStatus, cacheStatus, h.sessions.ActiveSessions(),
	)
	return h.editOrSend(c, text, tele.ModeMarkdown, backToManagementMarkup())
}
