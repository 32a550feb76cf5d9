package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"legends-bot/internal/domain"
)

func (a *App) showStart(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	userID := domain.UserID(m.From.ID)

	registered, err := a.registration.IsRegistered(ctx, userID)
	if err != nil {
		return err
	}
	if !registered {
		state := DialogueState{Flow: flowRegistration, Step: 1, Data: map[string]string{}}
		if err := a.states.Set(ctx, chatID, state); err != nil {
			return err
		}
		return a.sendText(chatID, textStartRegistration)
	}
	return a.showMainMenu(ctx, chatID, userID)
}

func (a *App) showMainMenu(ctx context.Context, chatID int64, userID domain.UserID) error {
	registered, err := a.registration.IsRegistered(ctx, userID)
	if err != nil {
		return err
	}
	if !registered {
		return a.sendText(chatID, textNotRegistered)
	}
	admin, err := a.registration.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	return a.sendWithKeyboard(chatID, textMainMenu, mainMenuKeyboard(admin))
}

func (a *App) showProfile(ctx context.Context, chatID int64, userID domain.UserID) error {
	profile, err := a.registration.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("👤 Профиль\n")
	fmt.Fprintf(&b, "Имя: %s\n", profile.FullName)
	fmt.Fprintf(&b, "Группа: %s\n", profile.Group)
	if profile.TeamName != nil {
		fmt.Fprintf(&b, "Команда: %s\n", *profile.TeamName)
	} else {
		fmt.Fprintf(&b, "Режим: %s\n", modeText(profile.Mode))
	}
	return a.sendWithKeyboard(chatID, b.String(), profileKeyboard())
}

func modeText(mode domain.ParticipationMode) string {
	switch mode {
	case domain.ModeSolo:
		return "соло"
	case domain.ModeInTeam:
		return "в команде"
	default:
		return "ищу команду"
	}
}

func (a *App) showTeamMenu(ctx context.Context, chatID int64, userID domain.UserID) error {
	team, err := a.teams.GetUserTeam(ctx, userID)
	if err != nil {
		return err
	}
	if team == nil {
		return a.sendWithKeyboard(chatID, "Ты пока без команды.", teamMenuKeyboard(false))
	}

	full, err := a.teams.GetTeamWithMembers(ctx, team.ID)
	if err != nil {
		return err
	}
	captain, err := a.teams.IsCaptain(ctx, userID)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Команда «%s»\n", full.Name)
	fmt.Fprintf(&b, "Код приглашения: %s\n", full.ID)
	fmt.Fprintf(&b, "Участники (%d из %d):\n", full.Size, full.MaxSize)
	for i, member := range full.Members {
		marker := ""
		if member.ID == full.CaptainID {
			marker = " 👑"
		}
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, member.FullName, marker)
	}
	return a.sendWithKeyboard(chatID, b.String(), membersKeyboard(full, captain, userID))
}

func (a *App) showTracks(ctx context.Context, chatID int64, userID domain.UserID) error {
	tags, err := a.tracks.GetAvailableTracks(ctx, userID)
	if err != nil {
		return a.replyError(chatID, err)
	}
	return a.sendWithKeyboard(chatID, textChooseTrack, tracksKeyboard(tags))
}

func (a *App) showTrack(ctx context.Context, chatID int64, userID domain.UserID, tag domain.TrackTag) error {
	started, err := a.tracks.CheckStartedTrack(ctx, userID, tag)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if !started {
		return a.sendWithKeyboard(chatID, "Трек «"+string(tag)+"». Готовы начать?", trackKeyboard(tag, false))
	}

	progress, err := a.tracks.GetTrackInProgress(ctx, userID, tag)
	if err != nil {
		return a.replyError(chatID, err)
	}
	text := fmt.Sprintf("Трек «%s»\n%s\nПрогресс: %d%%", tag, progress.Description, int(progress.Percent*100))
	if err := a.sendText(chatID, text); err != nil {
		return err
	}
	return a.showTasks(ctx, chatID, userID, tag)
}

func (a *App) startTrack(ctx context.Context, chatID int64, userID domain.UserID, tag domain.TrackTag) error {
	progress, err := a.tracks.StartTrack(ctx, userID, tag)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if progress.Media.FileID != "" {
		if err := a.sendMedia(chatID, progress.Media, progress.Description); err != nil {
			return err
		}
	} else if err := a.sendText(chatID, progress.Description); err != nil {
		return err
	}
	return a.showTasks(ctx, chatID, userID, tag)
}

func (a *App) showTasks(ctx context.Context, chatID int64, userID domain.UserID, tag domain.TrackTag) error {
	available, err := a.tracks.GetAvailableTasks(ctx, userID, tag)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if len(available) == 0 {
		return a.sendText(chatID, "Открытых заданий нет. Похоже, трек пройден!")
	}
	return a.sendWithKeyboard(chatID, textChooseTask, tasksKeyboard(tag, available))
}

func (a *App) showTask(ctx context.Context, chatID int64, userID domain.UserID, tag domain.TrackTag, taskID domain.TaskID) error {
	task, err := a.tracks.GetTask(ctx, taskID)
	if err != nil {
		return a.replyError(chatID, err)
	}

	if task.MediaID != "" {
		if media, err := a.media.Get(ctx, task.MediaID); err == nil {
			if err := a.sendMedia(chatID, media, ""); err != nil {
				return err
			}
		}
	}

	text := fmt.Sprintf("Задание %d\n%s", task.Index, task.Question)
	if len(task.Options) > 0 {
		text += "\nВарианты: " + strings.Join(task.Options, ", ")
	}
	if err := a.sendText(chatID, text); err != nil {
		return err
	}

	state := DialogueState{
		Flow: flowTaskAnswer,
		Step: 1,
		Data: map[string]string{
			"track":   string(tag),
			"task_id": strconv.Itoa(int(taskID)),
		},
	}
	if err := a.states.Set(ctx, chatID, state); err != nil {
		return err
	}
	return a.sendText(chatID, textAnswerPrompt)
}

func (a *App) showSlots(ctx context.Context, chatID int64, userID domain.UserID) error {
	reserved, err := a.slots.GetReservedSlot(ctx, userID)
	if err != nil {
		return a.replyError(chatID, err)
	}
	if reserved != nil {
		text := fmt.Sprintf("🎟 Бронь на финал\n%s, %s",
			reserved.Start.Format("02.01 15:04"), reserved.Site)
		return a.sendWithKeyboard(chatID, text, reservedSlotKeyboard())
	}

	starts, err := a.slots.GetAvailableStarts(ctx)
	if err != nil {
		return err
	}
	if len(starts) == 0 {
		return a.sendText(chatID, textNoSlotStarts)
	}
	return a.sendWithKeyboard(chatID, textChooseSlotStart, slotStartsKeyboard(starts))
}

func (a *App) showCharacters(ctx context.Context, chatID int64) error {
	names, err := a.characters.GetNames(ctx)
	if err != nil {
		return err
	}
	return a.sendWithKeyboard(chatID, textChooseCharacter, charactersKeyboard(names))
}

func (a *App) showCharacter(ctx context.Context, chatID int64, name string) error {
	character, err := a.characters.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if character == nil {
		return a.sendText(chatID, "Такой легенды я не знаю.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 %s\n", character.Name)
	if character.Quote != "" {
		fmt.Fprintf(&b, "«%s»\n", character.Quote)
	}
	for _, fact := range character.Facts {
		fmt.Fprintf(&b, "• %s\n", fact)
	}
	if character.Legacy != "" {
		b.WriteString(character.Legacy)
	}

	if character.Media != "" {
		if media, err := a.media.Get(ctx, character.Media); err == nil {
			return a.sendMedia(chatID, media, b.String())
		}
	}
	return a.sendText(chatID, b.String())
}

// ---------- callback routing ----------

func (a *App) handleUserCallback(ctx context.Context, chatID int64, userID domain.UserID, data string) error {
	switch data {
	case cbMenu:
		return a.showMainMenu(ctx, chatID, userID)
	case cbProfile:
		return a.showProfile(ctx, chatID, userID)
	case cbEditName:
		return a.startInputFlow(ctx, chatID, flowEditName, textAskFullName)
	case cbEditGroup:
		return a.startInputFlow(ctx, chatID, flowEditGroup, textAskGroupEdit)
	case cbModeSolo:
		if err := a.registration.SwitchToSolo(ctx, userID); err != nil {
			return a.replyError(chatID, err)
		}
		return a.sendText(chatID, textModeSolo)
	case cbModeLooking:
		if err := a.registration.SwitchToLookingForTeam(ctx, userID); err != nil {
			return a.replyError(chatID, err)
		}
		return a.sendText(chatID, textModeLooking)
	case cbTeam:
		return a.showTeamMenu(ctx, chatID, userID)
	case cbTeamCreate:
		return a.startInputFlow(ctx, chatID, flowTeamCreate, textAskTeamName)
	case cbTeamJoin:
		return a.startInputFlow(ctx, chatID, flowTeamJoin, textAskInviteCode)
	case cbTeamExit:
		if err := a.teams.Exit(ctx, userID); err != nil {
			return a.replyError(chatID, err)
		}
		return a.sendText(chatID, textLeftTeam)
	case cbTracks:
		return a.showTracks(ctx, chatID, userID)
	case cbSlots:
		return a.showSlots(ctx, chatID, userID)
	case cbSlotCancel:
		if err := a.slots.Cancel(ctx, userID); err != nil {
			return a.replyError(chatID, err)
		}
		return a.sendText(chatID, textSlotCancelled)
	case cbCharacters:
		return a.showCharacters(ctx, chatID)
	case cbFeedback:
		return a.startInputFlow(ctx, chatID, flowFeedback, textAskFeedback)
	}

	switch {
	case strings.HasPrefix(data, cbStartPrefix):
		tag, ok := domain.ParseTrackTag(strings.TrimPrefix(data, cbStartPrefix))
		if !ok {
			return nil
		}
		return a.startTrack(ctx, chatID, userID, tag)

	case strings.HasPrefix(data, cbTaskPrefix):
		rest := strings.TrimPrefix(data, cbTaskPrefix)
		tagStr, idStr, found := strings.Cut(rest, ":")
		if !found {
			return nil
		}
		tag, ok := domain.ParseTrackTag(tagStr)
		if !ok {
			return nil
		}
		taskID, err := strconv.Atoi(idStr)
		if err != nil {
			return nil
		}
		return a.showTask(ctx, chatID, userID, tag, domain.TaskID(taskID))

	case strings.HasPrefix(data, cbTrackPrefix):
		tag, ok := domain.ParseTrackTag(strings.TrimPrefix(data, cbTrackPrefix))
		if !ok {
			return nil
		}
		return a.showTrack(ctx, chatID, userID, tag)

	case strings.HasPrefix(data, cbSlotPrefix):
		start, err := time.Parse(time.RFC3339, strings.TrimPrefix(data, cbSlotPrefix))
		if err != nil {
			return nil
		}
		state := DialogueState{
			Flow: flowSlotPlaces,
			Step: 1,
			Data: map[string]string{"start": start.Format(time.RFC3339)},
		}
		if err := a.states.Set(ctx, chatID, state); err != nil {
			return err
		}
		return a.sendText(chatID, textAskPlaces)

	case strings.HasPrefix(data, cbCharPrefix):
		return a.showCharacter(ctx, chatID, strings.TrimPrefix(data, cbCharPrefix))

	case strings.HasPrefix(data, cbKickPrefix):
		memberID, err := strconv.ParseInt(strings.TrimPrefix(data, cbKickPrefix), 10, 64)
		if err != nil {
			return nil
		}
		if err := a.teams.RemoveMember(ctx, userID, domain.UserID(memberID)); err != nil {
			return a.replyError(chatID, err)
		}
		return a.sendText(chatID, textMemberRemoved)
	}

	return nil
}

func (a *App) handleAdminCallback(ctx context.Context, chatID int64, data string) error {
	switch data {
	case cbAdminMenu:
		return a.sendWithKeyboard(chatID, "🛠 Админ-панель", adminMenuKeyboard())
	case cbAdminMedia:
		return a.startInputFlow(ctx, chatID, flowAdminMedia, textAdminAskMedia)
	}
	return nil
}

func (a *App) startInputFlow(ctx context.Context, chatID int64, flow, prompt string) error {
	state := DialogueState{Flow: flow, Step: 1, Data: map[string]string{}}
	if err := a.states.Set(ctx, chatID, state); err != nil {
		return err
	}
	return a.sendText(chatID, prompt)
}
