package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"legends-bot/internal/domain"
	"legends-bot/internal/service"
)

// Callback data prefixes. User actions carry "u:", admin actions "a:".
const (
	cbMenu        = "u:menu"
	cbProfile     = "u:profile"
	cbEditName    = "u:edit_name"
	cbEditGroup   = "u:edit_group"
	cbModeSolo    = "u:mode_solo"
	cbModeLooking = "u:mode_looking"
	cbTeam        = "u:team"
	cbTeamCreate  = "u:team_create"
	cbTeamJoin    = "u:team_join"
	cbTeamExit    = "u:team_exit"
	cbTracks      = "u:tracks"
	cbTrackPrefix = "u:track:"
	cbStartPrefix = "u:track_start:"
	cbTaskPrefix  = "u:task:"
	cbSlots       = "u:slots"
	cbSlotPrefix  = "u:slot:"
	cbSlotCancel  = "u:slot_cancel"
	cbCharacters  = "u:characters"
	cbCharPrefix  = "u:char:"
	cbFeedback    = "u:feedback"
	cbKickPrefix  = "u:kick:"
	cbAdminMenu   = "a:menu"
	cbAdminMedia  = "a:media"
)

func mainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", cbProfile),
			tgbotapi.NewInlineKeyboardButtonData("👥 Команда", cbTeam),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Треки", cbTracks),
			tgbotapi.NewInlineKeyboardButtonData("🎟 Финал", cbSlots),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 Легенды", cbCharacters),
			tgbotapi.NewInlineKeyboardButtonData("✉️ Отзыв", cbFeedback),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Админ", cbAdminMenu),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Имя", cbEditName),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Группа", cbEditGroup),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙋 Играю соло", cbModeSolo),
			tgbotapi.NewInlineKeyboardButtonData("🔎 Ищу команду", cbModeLooking),
		),
		backRow(),
	)
}

func teamMenuKeyboard(inTeam bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if inTeam {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из команды", cbTeamExit),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Создать", cbTeamCreate),
			tgbotapi.NewInlineKeyboardButtonData("🔑 По коду", cbTeamJoin),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func membersKeyboard(team service.TeamWithMembersDTO, viewerIsCaptain bool, viewerID domain.UserID) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if viewerIsCaptain {
		for _, m := range team.Members {
			if m.ID == viewerID {
				continue
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					"❌ "+string(m.FullName),
					fmt.Sprintf("%s%d", cbKickPrefix, m.ID),
				),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из команды", cbTeamExit),
	))
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func tracksKeyboard(tags []domain.TrackTag) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tag := range tags {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(string(tag), cbTrackPrefix+string(tag)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func trackKeyboard(tag domain.TrackTag, started bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if started {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Задания", cbTrackPrefix+string(tag)),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Начать трек", cbStartPrefix+string(tag)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func tasksKeyboard(tag domain.TrackTag, tasks []service.TaskDTO) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Задание %d", task.Index),
				fmt.Sprintf("%s%s:%d", cbTaskPrefix, tag, task.ID),
			),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func slotStartsKeyboard(starts []time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, start := range starts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				start.Format("02.01 15:04"),
				cbSlotPrefix+start.Format(time.RFC3339),
			),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reservedSlotKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить бронь", cbSlotCancel),
		),
		backRow(),
	)
}

func charactersKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, name := range names {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, cbCharPrefix+name),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🖼 Загрузить медиа", cbAdminMedia),
		),
		backRow(),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 В меню", cbMenu),
	)
}
