package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"legends-bot/internal/domain"
)

// Registration asks for the full name, then the study group, then
// creates the profile.
func (a *App) handleRegistrationFlow(ctx context.Context, m *tgbotapi.Message, state DialogueState) error {
	chatID := m.Chat.ID

	switch state.Step {
	case 1:
		fullName, err := domain.NewFullName(strings.TrimSpace(m.Text))
		if err != nil {
			return a.replyError(chatID, err)
		}
		state.Step = 2
		state.Data["full_name"] = string(fullName)
		if err := a.states.Set(ctx, chatID, state); err != nil {
			return err
		}
		return a.sendText(chatID, textAskGroup)

	case 2:
		group, err := domain.NewGroupName(strings.TrimSpace(m.Text))
		if err != nil {
			return a.replyError(chatID, err)
		}
		fullName, err := domain.NewFullName(state.Data["full_name"])
		if err != nil {
			return a.replyError(chatID, err)
		}

		_, err = a.registration.Register(ctx, domain.UserID(m.From.ID), domain.Username(m.From.UserName), fullName, group)
		if err != nil {
			return a.replyError(chatID, err)
		}
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}

		admin, err := a.registration.IsAdmin(ctx, domain.UserID(m.From.ID))
		if err != nil {
			return err
		}
		return a.sendWithKeyboard(chatID, textRegistered, mainMenuKeyboard(admin))
	}

	return a.states.Clear(ctx, chatID)
}

func (a *App) handleEditNameFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	fullName, err := domain.NewFullName(strings.TrimSpace(m.Text))
	if err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.registration.ChangeFullName(ctx, domain.UserID(m.From.ID), fullName); err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID, textProfileSaved)
}

func (a *App) handleEditGroupFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	group, err := domain.NewGroupName(strings.TrimSpace(m.Text))
	if err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.registration.ChangeGroupName(ctx, domain.UserID(m.From.ID), group); err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID, textProfileSaved)
}

func (a *App) handleTeamCreateFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	name, err := domain.NewTeamName(strings.TrimSpace(m.Text))
	if err != nil {
		return a.replyError(chatID, err)
	}
	team, err := a.teams.Create(ctx, domain.UserID(m.From.ID), name)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID,
		"Команда «"+string(team.Name)+"» создана!\nКод приглашения: "+string(team.ID)+
			"\nПоделись им с участниками.")
}

func (a *App) handleTeamJoinFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	teamID, err := domain.ParseTeamID(strings.TrimSpace(m.Text))
	if err != nil {
		return a.replyError(chatID, err)
	}
	exists, err := a.teams.Exists(ctx, teamID)
	if err != nil {
		return err
	}
	if !exists {
		return a.sendText(chatID, "Команда с таким кодом не найдена. Проверь код.")
	}

	team, err := a.teams.Join(ctx, domain.UserID(m.From.ID), teamID)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID, "Ты в команде «"+string(team.Name)+"»!")
}

// Task answers keep the flow active on a wrong answer so the user can
// retry without re-opening the task.
func (a *App) handleTaskAnswerFlow(ctx context.Context, m *tgbotapi.Message, state DialogueState) error {
	chatID := m.Chat.ID

	tag, ok := domain.ParseTrackTag(state.Data["track"])
	if !ok {
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}
		return a.sendText(chatID, textStateReset)
	}
	taskID, err := strconv.Atoi(state.Data["task_id"])
	if err != nil {
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}
		return a.sendText(chatID, textStateReset)
	}

	result, err := a.tracks.AnswerTask(ctx, domain.UserID(m.From.ID), tag, domain.TaskID(taskID), m.Text)
	if err != nil {
		return a.replyError(chatID, err)
	}

	if !result.Solved {
		return a.sendText(chatID, textAnswerWrong)
	}

	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	if err := a.sendText(chatID, textAnswerCorrect); err != nil {
		return err
	}
	if result.TrackFinished {
		return a.sendText(chatID, textTrackFinished)
	}
	return a.showTasks(ctx, chatID, domain.UserID(m.From.ID), tag)
}

func (a *App) handleSlotPlacesFlow(ctx context.Context, m *tgbotapi.Message, state DialogueState) error {
	chatID := m.Chat.ID

	start, err := time.Parse(time.RFC3339, state.Data["start"])
	if err != nil {
		if err := a.states.Clear(ctx, chatID); err != nil {
			return err
		}
		return a.sendText(chatID, textStateReset)
	}
	places, err := strconv.Atoi(strings.TrimSpace(m.Text))
	if err != nil || places < 1 {
		return a.sendText(chatID, "Введи число мест, например 4.")
	}

	slot, err := a.slots.Reserve(ctx, domain.UserID(m.From.ID), start, domain.Places(places))
	if err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID,
		"Бронь подтверждена: "+slot.Start.Format("02.01 15:04")+", "+string(slot.Site)+
			", мест: "+strconv.Itoa(places)+".")
}

func (a *App) handleFeedbackFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	if err := a.feedback.Submit(ctx, domain.UserID(m.From.ID), m.Text); err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID, textFeedbackThanks)
}

// Admin media upload: a photo or video note whose caption is the
// internal media id.
func (a *App) handleAdminMediaFlow(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID

	var (
		fileID    string
		mediaType domain.MediaType
	)
	switch {
	case len(m.Photo) > 0:
		// The last photo size is the largest.
		fileID = m.Photo[len(m.Photo)-1].FileID
		mediaType = domain.MediaImage
	case m.VideoNote != nil:
		fileID = m.VideoNote.FileID
		mediaType = domain.MediaVideoNote
	default:
		return a.sendText(chatID, textAdminAskMedia)
	}

	caption := strings.TrimSpace(m.Caption)
	if caption == "" {
		return a.sendText(chatID, "Добавь подпись: внутренний id медиа.")
	}

	if _, err := a.media.Register(ctx, caption, fileID, mediaType); err != nil {
		return a.replyError(chatID, err)
	}
	if err := a.states.Clear(ctx, chatID); err != nil {
		return err
	}
	return a.sendText(chatID, textAdminMediaSaved)
}
