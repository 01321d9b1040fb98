package domain

import (
	"fmt"
	"time"
)

// BookingLockKey ключ advisory lock, сериализующий создание бронирований компаньона на дату
func BookingLockKey(companionID int64, date time.Time) string {
	return fmt.Sprintf("booking:%d:%s", companionID, date.Format(DateFormat))
}

// SlotLockKey ключ advisory lock для изменения слотов компаньона в день недели
func SlotLockKey(companionID int64, day DayOfWeek) string {
	return fmt.Sprintf("slot:%d:%s", companionID, day)
}
