// Package telegram is the presentation layer: operator commands, hot
// lead notifications and the tenant questionnaire over the bot API.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/match"
	"github.com/elp-logistics/market-radar/internal/radar"
	"github.com/elp-logistics/market-radar/internal/storage"
)

const (
	leadsPerReply   = 10
	listingsPerRank = 200
)

// Sender delivers messages to a chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendMarkdown(ctx context.Context, chatID int64, text string) error
}

// Gateway is the slice of the store the bot reads and writes.
type Gateway interface {
	LeadsSince(ctx context.Context, hours int, minScore int, source string, limit int) ([]storage.Lead, error)
	PeriodHours(ctx context.Context, chatID int64) (int, error)
	SetPeriodHours(ctx context.Context, chatID int64, hours int) error
	TenantProfile(ctx context.Context, chatID int64) (*storage.TenantProfile, error)
	UpsertTenantProfile(ctx context.Context, p storage.TenantProfile) error
	Listings(ctx context.Context, limit int) ([]storage.Listing, error)
}

// Runner triggers an on-demand scan.
type Runner interface {
	Run(ctx context.Context) *radar.Report
}

// APISender implements Sender over the bot API.
type APISender struct {
	api *tgbotapi.BotAPI
}

func NewAPISender(api *tgbotapi.BotAPI) *APISender {
	return &APISender{api: api}
}

func (s *APISender) SendText(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.api.Send(msg)
	return err
}

func (s *APISender) SendMarkdown(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := s.api.Send(msg)
	return err
}

// Bot dispatches operator commands and pushes hot leads.
type Bot struct {
	Sender      Sender
	Store       Gateway
	Radar       Runner
	Sessions    *Sessions
	AdminChatID int64
	HotScore    int
	Logger      *zap.Logger
}

func NewBot(sender Sender, store Gateway, runner Runner, adminChatID int64, hotScore int, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		Sender:      sender,
		Store:       store,
		Radar:       runner,
		Sessions:    NewSessions(),
		AdminChatID: adminChatID,
		HotScore:    hotScore,
		Logger:      logger,
	}
}

// NotifyLead pushes one hot lead to the operator chat.
func (b *Bot) NotifyLead(ctx context.Context, lead storage.Lead) error {
	return b.Sender.SendMarkdown(ctx, b.AdminChatID, FormatLead(lead))
}

// HandleUpdate processes one incoming update. Messages from chats other
// than the operator's are dropped.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	if b.AdminChatID != 0 && chatID != b.AdminChatID {
		b.Logger.Debug("message from foreign chat ignored", zap.Int64("chat_id", chatID))
		return
	}

	if !msg.IsCommand() {
		if b.Sessions.Active(chatID) {
			b.advanceQuestionnaire(ctx, chatID, msg.Text)
		}
		return
	}

	switch msg.Command() {
	case "start":
		b.reply(ctx, chatID, "ELP Market Radar готов. Команды: /scan_now /radar /hot /period /tenant /match")
	case "scan_now":
		b.handleScanNow(ctx, chatID)
	case "radar":
		b.handleLeads(ctx, chatID, 0, "Пока нет лидов.")
	case "hot":
		b.handleLeads(ctx, chatID, b.HotScore, "Пока нет hot лидов.")
	case "period":
		b.handlePeriod(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
	case "tenant":
		b.reply(ctx, chatID, b.Sessions.Start(chatID))
	case "match":
		b.handleMatch(ctx, chatID)
	default:
		b.reply(ctx, chatID, "Неизвестная команда. Доступно: /scan_now /radar /hot /period /tenant /match")
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.Sender.SendText(ctx, chatID, text); err != nil {
		b.Logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) replyMarkdown(ctx context.Context, chatID int64, text string) {
	if err := b.Sender.SendMarkdown(ctx, chatID, text); err != nil {
		b.Logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) handleScanNow(ctx context.Context, chatID int64) {
	if b.Radar == nil {
		b.reply(ctx, chatID, "Сканер недоступен.")
		return
	}
	report := b.Radar.Run(ctx)
	b.reply(ctx, chatID, report.Summary())
}

func (b *Bot) handleLeads(ctx context.Context, chatID int64, minScore int, emptyText string) {
	hours, err := b.Store.PeriodHours(ctx, chatID)
	if err != nil {
		b.Logger.Warn("period lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
		hours = storage.DefaultPeriodHours
	}

	leads, err := b.Store.LeadsSince(ctx, hours, minScore, "", leadsPerReply)
	if err != nil {
		b.Logger.Warn("lead query failed", zap.Error(err))
		b.reply(ctx, chatID, "Не удалось получить лиды.")
		return
	}
	if len(leads) == 0 {
		b.reply(ctx, chatID, emptyText)
		return
	}
	for _, lead := range leads {
		b.replyMarkdown(ctx, chatID, FormatLead(lead))
	}
}

func (b *Bot) handlePeriod(ctx context.Context, chatID int64, args string) {
	if args == "" {
		hours, err := b.Store.PeriodHours(ctx, chatID)
		if err != nil {
			b.Logger.Warn("period lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
			b.reply(ctx, chatID, "Не удалось получить период.")
			return
		}
		b.reply(ctx, chatID, fmt.Sprintf("Период выборки: %d ч. Изменить: /period <часы>", hours))
		return
	}

	hours, err := strconv.Atoi(args)
	if err != nil || hours <= 0 {
		b.reply(ctx, chatID, "Нужно положительное число часов, например /period 72")
		return
	}
	if err := b.Store.SetPeriodHours(ctx, chatID, hours); err != nil {
		b.Logger.Warn("period update failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.reply(ctx, chatID, "Не удалось сохранить период.")
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf("Период выборки: %d ч.", hours))
}

func (b *Bot) advanceQuestionnaire(ctx context.Context, chatID int64, input string) {
	reply, profile, done := b.Sessions.Advance(chatID, input)
	if reply == "" {
		return
	}
	if done && profile != nil {
		if err := b.Store.UpsertTenantProfile(ctx, *profile); err != nil {
			b.Logger.Warn("profile save failed", zap.Int64("chat_id", chatID), zap.Error(err))
			b.reply(ctx, chatID, "Не удалось сохранить анкету, попробуйте /tenant ещё раз.")
			return
		}
	}
	b.reply(ctx, chatID, reply)
}

func (b *Bot) handleMatch(ctx context.Context, chatID int64) {
	profile, err := b.Store.TenantProfile(ctx, chatID)
	if err != nil {
		b.Logger.Warn("profile lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.reply(ctx, chatID, "Не удалось получить анкету.")
		return
	}
	if profile == nil {
		b.reply(ctx, chatID, "Сначала заполните анкету: /tenant")
		return
	}

	listings, err := b.Store.Listings(ctx, listingsPerRank)
	if err != nil {
		b.Logger.Warn("listing query failed", zap.Error(err))
		b.reply(ctx, chatID, "Не удалось получить объявления.")
		return
	}
	if len(listings) == 0 {
		b.reply(ctx, chatID, "База объявлений пока пуста.")
		return
	}

	results := match.Rank(*profile, listings)
	if !match.HasMatch(results) {
		b.reply(ctx, chatID, "Подходящих вариантов нет. Попробуйте расширить бюджет или сменить район и пройти /tenant заново.")
		return
	}
	for i, r := range results {
		b.replyMarkdown(ctx, chatID, FormatMatch(i+1, r))
	}
}
