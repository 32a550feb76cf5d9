package bot

import (
	"errors"
	"fmt"

	"legends-bot/internal/domain"
	"legends-bot/internal/service"
)

// Flow names stored in dialogue state.
const (
	flowRegistration = "registration"
	flowEditName     = "edit_name"
	flowEditGroup    = "edit_group"
	flowTeamCreate   = "team_create"
	flowTeamJoin     = "team_join"
	flowTaskAnswer   = "task_answer"
	flowSlotPlaces   = "slot_places"
	flowFeedback     = "feedback"
	flowAdminMedia   = "admin_media"
)

// User-facing texts. Kept in one place so wording changes do not touch
// handler logic.
const (
	textStartRegistration = "Привет! Это «Легенды Бауманки». Давай зарегистрируемся.\nВведи своё имя и фамилию:"
	textAskGroup          = "Теперь введи свою учебную группу (например, ИУ7-13Б):"
	textRegistered        = "Готово! Ты в игре. Выбирай, что дальше:"
	textMainMenu          = "Главное меню:"
	textNotRegistered     = "Ты ещё не зарегистрирован. Нажми /start"
	textAccessDenied      = "Доступ запрещён."
	textStateReset        = "Сброс состояния. Нажми /start"

	textAskFullName   = "Введи новое имя и фамилию:"
	textAskGroupEdit  = "Введи новую учебную группу:"
	textProfileSaved  = "Профиль обновлён."
	textModeSolo      = "Теперь ты играешь соло. Тебе доступен трек «Университет»."
	textModeLooking   = "Теперь ты в поиске команды. Поделись своим ником с капитаном."
	textAskTeamName   = "Введи название команды:"
	textAskInviteCode = "Введи код приглашения (6 символов):"
	textLeftTeam      = "Ты вышел из команды."
	textMemberRemoved = "Участник исключён из команды."

	textChooseTrack   = "Выбери трек:"
	textChooseTask    = "Выбери задание:"
	textAnswerPrompt  = "Введи ответ:"
	textAnswerCorrect = "Верно! Команда получает очки."
	textAnswerWrong   = "Пока неверно. Можно попробовать ещё раз."
	textTrackFinished = "Трек завершён! Поздравляем 🎉"

	textChooseSlotStart = "Выбери время финала:"
	textAskPlaces       = "Сколько мест забронировать?"
	textSlotCancelled   = "Бронь отменена."
	textNoSlotStarts    = "Свободных окон на финал сейчас нет."

	textChooseCharacter = "О ком рассказать?"
	textAskFeedback     = "Напиши свой отзыв или предложение:"
	textFeedbackThanks  = "Спасибо! Мы всё читаем."

	textAdminAskMedia   = "Пришли фото или видео-кружок с подписью — внутренним id медиа."
	textAdminMediaSaved = "Медиа сохранено."

	textSomethingWrong = "Что-то пошло не так. Попробуй ещё раз."
)

// errorText maps domain and service errors to a user-facing message.
// Unknown errors get a generic apology; the caller logs the original.
func errorText(err error) (string, bool) {
	var (
		invalid     *domain.ErrInvalidValue
		teamFull    *domain.ErrTeamIsFull
		alreadyIn   *domain.ErrUserAlreadyInTeam
		notMember   *domain.ErrUserIsNotMemberOfTeam
		cantStart   *domain.ErrTrackCanNotBeStarted
		notStarted  *domain.ErrTrackNotStarted
		cantReserve *domain.ErrCanNotReserveSlot
		alreadySlot *domain.ErrTeamAlreadyReservedSlot
		noSlot      *domain.ErrTeamNotReservedSlot
		cantSwitch  *domain.ErrCannotSwitchMode
		notInTeam   *service.ErrUserNotInTeam
		notCaptain  *service.ErrNotTeamCaptain
		noSlots     *service.ErrNoAvailableSlots
		tooMany     *service.ErrPlacesExceedTeamSize
	)

	switch {
	case errors.As(err, &invalid):
		return "Не получилось распознать ввод. Проверь формат и попробуй ещё раз.", true
	case errors.As(err, &teamFull):
		return fmt.Sprintf("Команда уже заполнена (максимум %d человек).", domain.MaxTeamSize), true
	case errors.As(err, &alreadyIn):
		return "Ты уже состоишь в команде. Сначала выйди из неё.", true
	case errors.As(err, &notMember):
		return "Ты не состоишь в команде.", true
	case errors.As(err, &cantStart):
		return "Этот трек уже начат или завершён.", true
	case errors.As(err, &notStarted):
		return "Сначала начни трек.", true
	case errors.As(err, &cantReserve):
		return "В этом окне не хватает мест.", true
	case errors.As(err, &alreadySlot):
		return "У команды уже есть бронь. Сначала отмени её.", true
	case errors.As(err, &noSlot):
		return "У команды нет активной брони.", true
	case errors.As(err, &cantSwitch):
		return "Сначала выйди из команды.", true
	case errors.As(err, &notInTeam):
		return "Для этого нужна команда. Создай свою или вступи по коду.", true
	case errors.As(err, &notCaptain):
		return "Исключать участников может только капитан.", true
	case errors.As(err, &noSlots):
		return "На это время не осталось подходящих окон. Выбери другое.", true
	case errors.As(err, &tooMany):
		return fmt.Sprintf("Нельзя забронировать больше мест, чем человек в команде (%d).", tooMany.TeamSize), true
	}
	return textSomethingWrong, false
}
