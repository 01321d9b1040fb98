package inmem

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

var CompleteAddress = domain.Address{
	Line1:      "12 Sukhumvit Rd",
	City:       "Bangkok",
	PostalCode: "10110",
	Country:    "TH",
}

// SeedVerifiedClient аккаунт client с одобренной верификацией
func (s *Store) SeedVerifiedClient(id int64) {
	s.PutAccount(domain.Account{
		ID:          id,
		DisplayName: "client",
		Roles:       []domain.Role{domain.RoleClient},
		ActiveRole:  domain.RoleClient,
	})
	s.PutVerification(domain.ClientVerification{
		AccountID: id,
		Address:   CompleteAddress,
		Review:    domain.Review{Status: domain.ReviewApproved},
	})
}

// SeedCompanion аккаунт с активной ролью companion и одобренной заявкой
func (s *Store) SeedCompanion(id int64, hourlyRate float64, services ...string) {
	s.PutAccount(domain.Account{
		ID:          id,
		DisplayName: "companion",
		Roles:       []domain.Role{domain.RoleClient, domain.RoleCompanion},
		ActiveRole:  domain.RoleCompanion,
	})
	s.PutApplication(domain.CompanionApplication{
		AccountID:       id,
		LegalName:       "Companion",
		City:            "Bangkok",
		ServicesOffered: domain.NewServiceTags(services),
		HourlyRate:      hourlyRate,
		Review:          domain.Review{Status: domain.ReviewApproved},
	})
}

// SeedSlot слот доступности, возвращает его ID
func (s *Store) SeedSlot(companionID int64, day domain.DayOfWeek, start, end string, services ...string) int64 {
	return s.PutSlot(domain.AvailabilitySlot{
		CompanionID: companionID,
		DayOfWeek:   day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: true,
		Services:    domain.NewServiceTags(services),
	})
}

// Date разбирает "YYYY-MM-DD" в UTC, паникует на некорректной строке
func Date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}
