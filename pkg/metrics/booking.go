package metrics

// BookingRecorder бизнес-метрики бронирований
// Все методы безопасны для nil-получателя, поэтому сервисы могут работать без метрик
type BookingRecorder struct {
	m *Metrics
}

// NewBookingRecorder создает recorder поверх Metrics (m может быть nil)
func NewBookingRecorder(m *Metrics) *BookingRecorder {
	return &BookingRecorder{m: m}
}

// BookingCreated увеличивает счетчик созданных бронирований
func (r *BookingRecorder) BookingCreated(source string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingsCreatedTotal.WithLabelValues(source).Inc()
}

// BookingRejected увеличивает счетчик отклоненных попыток бронирования
func (r *BookingRecorder) BookingRejected(reason string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingConflictsTotal.WithLabelValues(reason).Inc()
}

// Transition увеличивает счетчик переходов статусов
func (r *BookingRecorder) Transition(from, to string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingTransitionTotal.WithLabelValues(from, to).Inc()
}

// EventPublished увеличивает счетчик опубликованных событий
func (r *BookingRecorder) EventPublished(eventType string, ok bool) {
	if r == nil || r.m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.m.EventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}
