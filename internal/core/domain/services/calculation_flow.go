package services

import (
	"context"
	"fmt"
	"strings"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/core/domain/model/tariff"
	"deliverybot/internal/core/ports"
	"deliverybot/internal/pkg/errs"
)

// maxMissingItemsShown caps how many incomplete item names are listed in one
// reply; the rest are summarized with a count.
const maxMissingItemsShown = 20

const (
	textWeightNotUnderstood = "Не понял вес.\n" +
		"Введите, например: 230 или 230кг, " +
		"или вставьте текст заказа в формате:\n" +
		"Название: ... 14кг\nКоличество: 3\n(бот попробует посчитать суммарный вес)"

	textWeightExceedsGrid = "Вес превышает лимиты тарифной сетки (> 2000 кг)."

	textSearchingAddress = "Ищу адрес, секунду…"

	textAddressNotFound = "Не удалось определить адрес. Введите координаты вручную (55.7558, 37.6173)."

	textEnterCoordsManually = "Введите координаты вручную (55.7558, 37.6173)"

	textChooseYesOrNo = "Пожалуйста, выберите «Да» или «Нет»."

	textCoordsNotUnderstood = "Не понял координаты. Пример: 55.7558, 37.6173"
)

// Keyboard tells the transport which reply keyboard to attach to a message.
type Keyboard int

const (
	// KeyboardNone leaves the chat keyboard as is.
	KeyboardNone Keyboard = iota

	// KeyboardYesNo attaches the two-button Да/Нет keyboard.
	KeyboardYesNo

	// KeyboardRemove removes any previously attached keyboard.
	KeyboardRemove
)

// Reply is one outbound message produced by the flow: its text and the
// keyboard directive accompanying it.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Result is the outcome of processing one inbound message: the replies to
// send, in order, and whether the conversation finished with a quote.
// A completed conversation's session must be removed by the caller.
type Result struct {
	Replies   []Reply
	Completed bool
}

// ProgressFunc delivers an interim reply while a slow step runs, ahead of the
// final Result. The flow uses it for the address-search notice so the user
// sees it before the geocoder answers. A nil ProgressFunc buffers such
// replies into the Result instead.
type ProgressFunc func(Reply)

// CalculationFlow is the domain service driving a pricing conversation. It
// takes the session's current state and one inbound text, mutates the session
// according to the state machine, and produces the replies to send.
//
// The flow is pure apart from the single geocoding lookup, which hides behind
// the Geocoder port so tests can substitute a deterministic stub.
type CalculationFlow struct {
	geocoder ports.Geocoder
	origin   kernel.GeoPoint
}

// NewCalculationFlow creates the flow service around a geocoder and the fixed
// origin point all distances are measured from.
func NewCalculationFlow(geocoder ports.Geocoder, origin kernel.GeoPoint) (*CalculationFlow, error) {
	if geocoder == nil {
		return nil, errs.NewValueIsRequiredError("geocoder")
	}
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	return &CalculationFlow{geocoder: geocoder, origin: origin}, nil
}

// Process advances the session with one inbound message.
//
// Bad input never returns an error: the user is re-prompted and the session
// stays in its current state. Errors signal a broken session or a violated
// invariant, conditions a correct caller cannot trigger with user input.
func (f *CalculationFlow) Process(ctx context.Context, sess *session.Session, text string, progress ProgressFunc) (Result, error) {
	if err := sess.Validate(); err != nil {
		return Result{}, err
	}

	switch sess.State() {
	case session.AwaitingWeight:
		return f.processWeight(sess, text)
	case session.AwaitingAddressOrCoords:
		return f.processAddressOrCoords(ctx, sess, text, progress)
	case session.ConfirmingAddress:
		return f.processConfirmation(sess, text)
	case session.AwaitingCoords:
		return f.processCoords(sess, text)
	default:
		return Result{}, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s cannot process messages", sess.State()))
	}
}

// processWeight handles the weight step: a bare weight first, an order text
// as the fallback.
func (f *CalculationFlow) processWeight(sess *session.Session, text string) (Result, error) {
	var replies []Reply

	weight, ok := ParseBareWeight(text)
	if !ok {
		parsed := ParseOrderText(text)

		if !parsed.Recognized() {
			return Result{Replies: []Reply{{Text: textWeightNotUnderstood}}}, nil
		}

		if !parsed.Complete() {
			return Result{Replies: []Reply{{Text: missingItemsText(parsed.MissingItems())}}}, nil
		}

		total, err := kernel.NewWeight(parsed.TotalKg())
		if err != nil {
			return Result{Replies: []Reply{{Text: textWeightNotUnderstood}}}, nil
		}

		weight = total
		replies = append(replies, Reply{
			Text: fmt.Sprintf("Общий вес по заказу: %.0f кг.", weight.Kg()),
		})
	}

	assigned, err := tariff.AssignTariff(weight)
	if err != nil {
		// the only expected failure is a weight above the grid limit
		replies = append(replies, Reply{Text: textWeightExceedsGrid})
		return Result{Replies: replies}, nil
	}

	if err := sess.AssignTariff(weight, assigned); err != nil {
		return Result{}, err
	}

	replies = append(replies, Reply{
		Text: fmt.Sprintf(
			"Тариф присвоен: %s\n\nТеперь введите адрес или координаты доставки.", assigned),
		Keyboard: KeyboardRemove,
	})
	return Result{Replies: replies}, nil
}

// processAddressOrCoords handles the destination step. Raw coordinates take
// precedence over free-text geocoding and skip the confirmation step.
func (f *CalculationFlow) processAddressOrCoords(ctx context.Context, sess *session.Session, text string, progress ProgressFunc) (Result, error) {
	if point, ok := ParseCoordinates(text); ok {
		if err := sess.SetDestination(point); err != nil {
			return Result{}, err
		}
		return f.finishCalculation(sess, nil)
	}

	// the search notice goes out before the lookup, which may take seconds
	var replies []Reply
	searching := Reply{Text: textSearchingAddress}
	if progress != nil {
		progress(searching)
	} else {
		replies = append(replies, searching)
	}

	resolved, found := f.geocoder.Resolve(ctx, strings.TrimSpace(text))
	if !found {
		if err := sess.RequireManualCoords(); err != nil {
			return Result{}, err
		}
		replies = append(replies, Reply{Text: textAddressNotFound})
		return Result{Replies: replies}, nil
	}

	if err := sess.ProposeAddress(resolved.DisplayName, resolved.Point); err != nil {
		return Result{}, err
	}

	replies = append(replies, Reply{
		Text:     fmt.Sprintf("Адрес доставки:\n\n%s\n\nПодтвердить?", resolved.DisplayName),
		Keyboard: KeyboardYesNo,
	})
	return Result{Replies: replies}, nil
}

// processConfirmation handles the yes/no answer about the geocoded candidate.
func (f *CalculationFlow) processConfirmation(sess *session.Session, text string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "да":
		if err := sess.ConfirmProposedAddress(); err != nil {
			return Result{}, err
		}
		return f.finishCalculation(sess, nil)

	case "нет":
		if err := sess.RequireManualCoords(); err != nil {
			return Result{}, err
		}
		return Result{Replies: []Reply{
			{Text: textEnterCoordsManually, Keyboard: KeyboardRemove},
		}}, nil

	default:
		return Result{Replies: []Reply{
			{Text: textChooseYesOrNo, Keyboard: KeyboardYesNo},
		}}, nil
	}
}

// processCoords handles manual coordinate entry.
func (f *CalculationFlow) processCoords(sess *session.Session, text string) (Result, error) {
	point, ok := ParseCoordinates(text)
	if !ok {
		return Result{Replies: []Reply{{Text: textCoordsNotUnderstood}}}, nil
	}

	if err := sess.SetDestination(point); err != nil {
		return Result{}, err
	}
	return f.finishCalculation(sess, nil)
}

// finishCalculation computes the distance and price for the accepted
// destination and produces the final summary. The caller is expected to
// remove the session once the Completed result is delivered.
func (f *CalculationFlow) finishCalculation(sess *session.Session, replies []Reply) (Result, error) {
	dest := sess.Destination()
	if dest == nil {
		return Result{}, errs.NewValueIsRequiredError("destination")
	}
	if sess.Weight() == nil {
		return Result{}, errs.NewValueIsRequiredError("weight")
	}

	distanceKm, err := f.origin.DistanceKm(*dest)
	if err != nil {
		return Result{}, err
	}

	quote, err := tariff.ComputePrice(sess.Tariff(), distanceKm)
	if err != nil {
		return Result{}, err
	}

	addressLine := fmt.Sprintf("\nКоординаты: %s", dest)
	if sess.ConfirmedAddress() != "" {
		addressLine = fmt.Sprintf("\nАдрес: %s", sess.ConfirmedAddress())
	}

	summary := fmt.Sprintf(
		"✅ Расчёт выполнен:\n"+
			"Вес: %s\n"+
			"Тариф: %s"+
			"%s\n"+
			"Расстояние от склада: ~%.2f км\n\n"+
			"Стоимость: %d %s\n"+
			"Новый расчёт — /start",
		sess.Weight(), sess.Tariff(), addressLine, distanceKm,
		quote.AmountRub(), quote.CurrencyCode(),
	)

	replies = append(replies, Reply{Text: summary, Keyboard: KeyboardRemove})
	return Result{Replies: replies, Completed: true}, nil
}

// missingItemsText lists the items lacking a quantity, capped at
// maxMissingItemsShown names.
func missingItemsText(items []string) string {
	shown := items
	moreNote := ""
	if len(items) > maxMissingItemsShown {
		shown = items[:maxMissingItemsShown]
		moreNote = fmt.Sprintf("\n...и ещё %d позиций", len(items)-maxMissingItemsShown)
	}

	lines := make([]string, 0, len(shown))
	for _, item := range shown {
		lines = append(lines, "- "+item)
	}

	return "Внимание — у следующих товаров не указано количество:\n" +
		strings.Join(lines, "\n") + moreNote + "\n\n" +
		"Пожалуйста, проверьте заказ и пришлите его снова, указав количество для каждого товара."
}
