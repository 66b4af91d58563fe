package bot

// User-facing reply texts. The bot speaks Russian; logs stay in English.
const (
	msgAccessDenied      = "❌ У вас нет доступа к этому боту."
	msgNoDownloads       = "📭 Нет загрузок"
	msgNoActiveDownloads = "📭 Нет активных загрузок"

	msgStartup = "✅ **Бот успешно запущен!**\n\nБот готов к работе. Используйте /help для просмотра всех доступных команд."

	msgWelcome = `🤖 **Бот для управления Transmission**

Доступные команды:
/start - Показать это сообщение
/all - Показать все загрузки
/active - Показать только активные загрузки
/pause - Поставить все загрузки на паузу
/resume - Продолжить все загрузки
/help - Показать справку

📎 **Отправьте .torrent файл** для автоматической загрузки`

	msgHelp = `📖 **Справка по использованию бота**

**Доступные команды:**

🔹 /start - Показать приветственное сообщение со списком команд
🔹 /help - Показать эту справку
🔹 /all - Показать все торренты (включая завершенные и остановленные)
🔹 /active - Показать только активные загрузки (загружающиеся, раздающиеся, проверяющиеся)
🔹 /pause - Поставить все загрузки на паузу
🔹 /resume - Продолжить все загрузки`
)
