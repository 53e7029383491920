package telegram

const textGreeting = "Введите вес материалов (например: 230кг или 230), " +
	"или вставьте текст заказа — бот попытается посчитать общий вес автоматически.\n\n" +
	"Короткий пример формата заказа:\n" +
	"Название: Краска ... 14кг\n" +
	"Количество: 3\n" +
	"Название: Штукатурка ... 18кг\n" +
	"Количество: 11\n\n" +
	"Наберите /help для подробностей."

const textHelp = "Бот для расчёта стоимости доставки.\n" +
	"Шаги:\n" +
	"1) Введите вес → будет присвоен тариф.\n" +
	"   Можно также прислать текст заказа с полями '...<вес>кг' и 'Количество: N' — бот посчитает суммарный вес.\n" +
	"2) Введите адрес или координаты.\n" +
	"3) Подтвердите адрес (если вводили адрес).\n" +
	"4) Мы посчитаем расстояние от точки: 55.683037, 37.661695 и стоимость.\n\n" +
	"Пример заказа:\n" +
	"Название: Краска ... 14кг\n" +
	"Количество: 3\n" +
	"Название: Штукатурка ... 18кг\n" +
	"Количество: 11\n\n" +
	"Команды: /start — новый расчёт, /cancel — отменить."

const textCancelled = "Отменено. Наберите /start для нового расчёта."

const textInternalError = "Произошла ошибка. Попробуйте ещё раз или наберите /start."
