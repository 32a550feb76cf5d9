package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/service"
)

// App drives the Telegram side of the event: long-polling update loop,
// dialogue flows and menu screens on top of the service layer.
type App struct {
	bot    *tgbotapi.BotAPI
	states *StateStore
	log    *zap.Logger

	registration *service.RegistrationService
	teams        *service.TeamService
	tracks       *service.TrackService
	slots        *service.SlotService
	characters   *service.CharacterService
	feedback     *service.FeedbackService
	media        *service.MediaService
}

// Services bundles everything the bot needs from the use-case layer.
type Services struct {
	Registration *service.RegistrationService
	Teams        *service.TeamService
	Tracks       *service.TrackService
	Slots        *service.SlotService
	Characters   *service.CharacterService
	Feedback     *service.FeedbackService
	Media        *service.MediaService
}

func New(token string, states *StateStore, services Services, log *zap.Logger) (*App, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false

	return &App{
		bot:          api,
		states:       states,
		log:          log,
		registration: services.Registration,
		teams:        services.Teams,
		tracks:       services.Tracks,
		slots:        services.Slots,
		characters:   services.Characters,
		feedback:     services.Feedback,
		media:        services.Media,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := a.bot.GetUpdatesChan(cfg)

	a.log.Info("bot started", zap.String("username", a.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			switch {
			case upd.Message != nil:
				if err := a.handleMessage(ctx, upd.Message); err != nil {
					a.log.Error("handle message failed",
						zap.Int64("chat_id", upd.Message.Chat.ID),
						zap.Error(err))
				}
			case upd.CallbackQuery != nil:
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					a.log.Error("handle callback failed",
						zap.Int64("user_id", upd.CallbackQuery.From.ID),
						zap.Error(err))
				}
			}
		}
	}
}

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	text := strings.TrimSpace(m.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}
		return a.showStart(ctx, m)
	case strings.HasPrefix(text, "/menu"):
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}
		return a.showMainMenu(ctx, chatID, domain.UserID(m.From.ID))
	}

	state, err := a.states.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if state.Active() {
		return a.handleFlowInput(ctx, m, state)
	}
	return a.showMainMenu(ctx, chatID, domain.UserID(m.From.ID))
}

func (a *App) handleFlowInput(ctx context.Context, m *tgbotapi.Message, state DialogueState) error {
	switch state.Flow {
	case flowRegistration:
		return a.handleRegistrationFlow(ctx, m, state)
	case flowEditName:
		return a.handleEditNameFlow(ctx, m)
	case flowEditGroup:
		return a.handleEditGroupFlow(ctx, m)
	case flowTeamCreate:
		return a.handleTeamCreateFlow(ctx, m)
	case flowTeamJoin:
		return a.handleTeamJoinFlow(ctx, m)
	case flowTaskAnswer:
		return a.handleTaskAnswerFlow(ctx, m, state)
	case flowSlotPlaces:
		return a.handleSlotPlacesFlow(ctx, m, state)
	case flowFeedback:
		return a.handleFeedbackFlow(ctx, m)
	case flowAdminMedia:
		return a.handleAdminMediaFlow(ctx, m)
	default:
		if err := a.states.Clear(ctx, m.Chat.ID); err != nil {
			return err
		}
		return a.sendText(m.Chat.ID, textStateReset)
	}
}

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	chatID := q.Message.Chat.ID
	userID := q.From.ID
	data := q.Data

	ack := tgbotapi.NewCallback(q.ID, "")
	if _, err := a.bot.Request(ack); err != nil {
		a.log.Warn("callback ack failed", zap.Error(err))
	}

	if strings.HasPrefix(data, "a:") {
		admin, err := a.registration.IsAdmin(ctx, domain.UserID(userID))
		if err != nil {
			return err
		}
		if !admin {
			return a.sendText(chatID, textAccessDenied)
		}
		return a.handleAdminCallback(ctx, chatID, data)
	}
	return a.handleUserCallback(ctx, chatID, domain.UserID(userID), data)
}

// ---------- sending helpers ----------

func (a *App) sendText(chatID int64, text string) error {
	_, err := a.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (a *App) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, err := a.bot.Send(msg)
	return err
}

// sendMedia re-sends a registered asset by its Telegram file id.
func (a *App) sendMedia(chatID int64, media service.MediaDTO, caption string) error {
	file := tgbotapi.FileID(media.FileID)
	switch media.Type {
	case domain.MediaVideoNote:
		note := tgbotapi.NewVideoNote(chatID, 0, file)
		if _, err := a.bot.Send(note); err != nil {
			return err
		}
		if caption != "" {
			return a.sendText(chatID, caption)
		}
		return nil
	default:
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		_, err := a.bot.Send(photo)
		return err
	}
}

// replyError turns a known domain error into a user message; unknown
// errors are propagated to the update loop after a generic apology.
func (a *App) replyError(chatID int64, err error) error {
	text, known := errorText(err)
	if sendErr := a.sendText(chatID, text); sendErr != nil {
		return sendErr
	}
	if known {
		return nil
	}
	return err
}
