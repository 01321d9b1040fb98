package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
)

const msgAccountNotFound = "аккаунт не найден"

// Сообщения для доменных ошибок. Детали чужих аккаунтов не раскрываются
var domainMessages = []struct {
	err error
	msg string
}{
	{domain.ErrSelfBooking, "нельзя забронировать самого себя"},
	{domain.ErrOutsideAvailability, "выбранное время вне расписания компаньона"},
	{domain.ErrInvalidRange, "время начала должно быть раньше времени окончания"},
	{domain.ErrInvalidService, "услуга недоступна"},
	{domain.ErrInvalidDayOfWeek, "некорректный день недели"},
	{domain.ErrInvalidRole, "некорректная роль"},
	{domain.ErrIncompleteAddress, "адрес заполнен не полностью"},
	{domain.ErrInvalidBookingStatus, "некорректный статус бронирования"},
	{domain.ErrDoubleBooked, "это время уже забронировано, выберите другое"},
	{domain.ErrSlotOverlap, "слот пересекается с существующим слотом"},
	{domain.ErrRoleNotGranted, "роль не выдана аккаунту"},
	{domain.ErrRoleNotActive, "операция недоступна в текущей роли"},
	{domain.ErrNotVerified, "верификация клиента не пройдена"},
	{domain.ErrCompanionNotApproved, "компаньон не одобрен"},
	{domain.ErrTransitionNotPermitted, "у вас нет прав на это действие"},
	{domain.ErrNotParticipant, "доступ запрещен"},
	{domain.ErrInvalidTransition, "недопустимая смена статуса, обновите данные"},
	{domain.ErrAlreadyPending, "заявка уже на рассмотрении"},
	{domain.ErrAlreadyApproved, "заявка уже одобрена"},
	{domain.ErrNotPendingReview, "заявка не ожидает рассмотрения"},
	{domain.ErrRequestNotPending, "запрос на бронирование уже обработан"},
	{domain.ErrRequestAlreadyRejected, "запрос на бронирование уже отклонен"},
	{domain.ErrRequestNotBookable, "запрос на бронирование больше нельзя принять"},
}

func domainMessage(err error) string {
	for _, m := range domainMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

// RespondDomainError отвечает по таксономии доменных ошибок:
// validation -> 422, conflict -> 409, authorization -> 403, state -> 409 + refetch.
// Аккаунт из токена, которого больше нет, -> 401.
// Возвращает false, если ошибку должен обработать вызывающий
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var overlap *domain.SlotOverlapError

	switch {
	case errors.Is(err, access.ErrAccountNotFound):
		RespondUnauthorized(w, msgAccountNotFound)
	case errors.As(err, &overlap):
		RespondJSON(w, http.StatusConflict, ErrorResponse{
			Error: domainMessage(err),
			Conflict: &ConflictDTO{
				ID:        overlap.Conflicting.ID,
				DayOfWeek: string(overlap.Conflicting.DayOfWeek),
				StartTime: overlap.Conflicting.StartTime.String(),
				EndTime:   overlap.Conflicting.EndTime.String(),
			},
		})
	case domain.IsConflict(err):
		RespondConflict(w, domainMessage(err))
	case domain.IsState(err):
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: domainMessage(err), Refetch: true})
	case domain.IsAuthorization(err):
		RespondForbidden(w, domainMessage(err))
	case domain.IsValidation(err):
		RespondUnprocessable(w, domainMessage(err))
	default:
		return false
	}
	return true
}
