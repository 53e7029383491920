// Package telegram implements the inbound chat adapter: a long-polling
// Telegram bot that routes commands and free text into the application layer
// and renders the flow's replies back into chat messages.
//
// Messages of one chat are handled strictly in order; different chats are
// handled concurrently.
package telegram

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"deliverybot/internal/core/application/usecases/commands"
	"deliverybot/internal/core/domain/services"
	"deliverybot/internal/pkg/errs"
)

const pollTimeoutSeconds = 60

// chatQueueSize bounds how many unhandled messages one chat may accumulate
// before further ones are dropped.
const chatQueueSize = 16

// Bot is the long-polling Telegram front end of the calculator.
type Bot struct {
	api            *tgbotapi.BotAPI
	processMessage commands.ProcessMessageCommandHandler
	resetSession   commands.ResetSessionCommandHandler
	logger         *slog.Logger

	mu     sync.Mutex
	queues map[int64]chan *tgbotapi.Message
	wg     sync.WaitGroup
}

// NewBot creates the bot around an authorized Telegram API client and the
// application-layer handlers.
func NewBot(
	api *tgbotapi.BotAPI,
	processMessage commands.ProcessMessageCommandHandler,
	resetSession commands.ResetSessionCommandHandler,
	logger *slog.Logger,
) (*Bot, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Bot{
		api:            api,
		processMessage: processMessage,
		resetSession:   resetSession,
		logger:         logger.With("component", "telegram"),
		queues:         make(map[int64]chan *tgbotapi.Message),
	}, nil
}

// Run starts long polling and blocks until the context is cancelled. On
// cancellation it stops polling, drains the per-chat queues and returns nil.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.closeQueues()
			b.wg.Wait()
			b.logger.Info("bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.closeQueues()
				b.wg.Wait()
				return nil
			}

			msg := update.Message
			if msg == nil || msg.Chat == nil {
				continue
			}
			b.dispatch(ctx, msg)
		}
	}
}

// dispatch hands the message to its chat's worker, creating the worker on the
// chat's first message. A full queue drops the message rather than stalling
// other chats.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	b.mu.Lock()
	queue, ok := b.queues[msg.Chat.ID]
	if !ok {
		queue = make(chan *tgbotapi.Message, chatQueueSize)
		b.queues[msg.Chat.ID] = queue

		b.wg.Add(1)
		go b.chatWorker(ctx, queue)
	}
	b.mu.Unlock()

	select {
	case queue <- msg:
	default:
		b.logger.Warn("chat queue full, message dropped", "chat_id", msg.Chat.ID)
	}
}

func (b *Bot) chatWorker(ctx context.Context, queue <-chan *tgbotapi.Message) {
	defer b.wg.Done()

	for msg := range queue {
		b.handleMessage(ctx, msg)
	}
}

func (b *Bot) closeQueues() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for chatID, queue := range b.queues {
		close(queue)
		delete(b.queues, chatID)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg.Chat.ID)
			return
		case "help":
			b.send(msg.Chat.ID, services.Reply{Text: textHelp})
			return
		case "cancel":
			b.handleCancel(ctx, msg.Chat.ID)
			return
		}
		// unknown commands fall through to the conversation flow
	}

	b.handleText(ctx, msg.Chat.ID, msg.Text)
}

// handleStart drops any conversation in progress and greets the user; the
// next message starts at the weight step.
func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.reset(ctx, chatID); err != nil {
		b.logger.Error("session reset failed", "chat_id", chatID, "error", err)
		b.send(chatID, services.Reply{Text: textInternalError, Keyboard: services.KeyboardRemove})
		return
	}

	b.send(chatID, services.Reply{Text: textGreeting, Keyboard: services.KeyboardRemove})
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	if err := b.reset(ctx, chatID); err != nil {
		b.logger.Error("session reset failed", "chat_id", chatID, "error", err)
		b.send(chatID, services.Reply{Text: textInternalError, Keyboard: services.KeyboardRemove})
		return
	}

	b.send(chatID, services.Reply{Text: textCancelled, Keyboard: services.KeyboardRemove})
}

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	cmd, err := commands.NewProcessMessageCommand(chatID, text)
	if err != nil {
		b.logger.Error("building command failed", "chat_id", chatID, "error", err)
		return
	}

	result, err := b.processMessage.Handle(ctx, cmd, func(reply services.Reply) {
		b.send(chatID, reply)
	})
	if err != nil {
		b.logger.Error("message processing failed", "chat_id", chatID, "error", err)
		b.send(chatID, services.Reply{Text: textInternalError, Keyboard: services.KeyboardRemove})
		return
	}

	for _, reply := range result.Replies {
		b.send(chatID, reply)
	}

	if result.Completed {
		b.logger.Info("calculation completed", "chat_id", chatID)
	}
}

func (b *Bot) reset(ctx context.Context, chatID int64) error {
	cmd, err := commands.NewResetSessionCommand(chatID)
	if err != nil {
		return err
	}

	return b.resetSession.Handle(ctx, cmd)
}

// send renders one flow reply into a chat message with its keyboard directive.
func (b *Bot) send(chatID int64, reply services.Reply) {
	out := tgbotapi.NewMessage(chatID, reply.Text)

	switch reply.Keyboard {
	case services.KeyboardYesNo:
		out.ReplyMarkup = yesNoKeyboard()
	case services.KeyboardRemove:
		out.ReplyMarkup = removeKeyboard()
	case services.KeyboardNone:
	}

	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("sending reply failed", "chat_id", chatID, "error", err)
	}
}
