package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// yesNoKeyboard builds the two-button confirmation keyboard shown while an
// address candidate awaits a yes/no answer.
func yesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("Да")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("Нет")),
	)
	kb.OneTimeKeyboard = true
	kb.InputFieldPlaceholder = "Выберите: Да / Нет"
	return kb
}

// removeKeyboard builds the directive clearing any previously shown keyboard.
func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
