// Package inmem содержит in-memory реализации репозиториев и менеджера транзакций для unit-тестов
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	accountRepo "github.com/m04kA/companion-booking/internal/infra/storage/account"
	applicationRepo "github.com/m04kA/companion-booking/internal/infra/storage/application"
	bookingRepo "github.com/m04kA/companion-booking/internal/infra/storage/booking"
	requestRepo "github.com/m04kA/companion-booking/internal/infra/storage/bookingrequest"
	favoriteRepo "github.com/m04kA/companion-booking/internal/infra/storage/favorite"
	slotRepo "github.com/m04kA/companion-booking/internal/infra/storage/slot"
	verificationRepo "github.com/m04kA/companion-booking/internal/infra/storage/verification"
)

type favoriteKey struct {
	client, companion int64
}

type state struct {
	accounts      map[int64]domain.Account
	verifications map[int64]domain.ClientVerification
	applications  map[int64]domain.CompanionApplication
	slots         map[int64]domain.AvailabilitySlot
	bookings      map[int64]domain.Booking
	requests      map[int64]domain.BookingRequest
	favorites     map[favoriteKey]time.Time
	nextID        int64
}

// Store хранит значения (не указатели), поэтому снимок состояния это копия map
type Store struct {
	mu  sync.Mutex
	st  state
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		st: state{
			accounts:      map[int64]domain.Account{},
			verifications: map[int64]domain.ClientVerification{},
			applications:  map[int64]domain.CompanionApplication{},
			slots:         map[int64]domain.AvailabilitySlot{},
			bookings:      map[int64]domain.Booking{},
			requests:      map[int64]domain.BookingRequest{},
			favorites:     map[favoriteKey]time.Time{},
			nextID:        1000,
		},
		Now: time.Now,
	}
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := state{
		accounts:      make(map[int64]domain.Account, len(s.st.accounts)),
		verifications: make(map[int64]domain.ClientVerification, len(s.st.verifications)),
		applications:  make(map[int64]domain.CompanionApplication, len(s.st.applications)),
		slots:         make(map[int64]domain.AvailabilitySlot, len(s.st.slots)),
		bookings:      make(map[int64]domain.Booking, len(s.st.bookings)),
		requests:      make(map[int64]domain.BookingRequest, len(s.st.requests)),
		favorites:     make(map[favoriteKey]time.Time, len(s.st.favorites)),
		nextID:        s.st.nextID,
	}
	for k, v := range s.st.accounts {
		cp.accounts[k] = v
	}
	for k, v := range s.st.verifications {
		cp.verifications[k] = v
	}
	for k, v := range s.st.applications {
		cp.applications[k] = v
	}
	for k, v := range s.st.slots {
		cp.slots[k] = v
	}
	for k, v := range s.st.bookings {
		cp.bookings[k] = v
	}
	for k, v := range s.st.requests {
		cp.requests[k] = v
	}
	for k, v := range s.st.favorites {
		cp.favorites[k] = v
	}
	return cp
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st
}

// Seed helpers

func (s *Store) PutAccount(acc domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc.Roles = append([]domain.Role(nil), acc.Roles...)
	s.st.accounts[acc.ID] = acc
}

func (s *Store) PutVerification(v domain.ClientVerification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.verifications[v.AccountID] = v
}

func (s *Store) PutApplication(app domain.CompanionApplication) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == 0 {
		app.ID = s.id()
	}
	s.st.applications[app.ID] = app
	return app.ID
}

func (s *Store) PutSlot(slot domain.AvailabilitySlot) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == 0 {
		slot.ID = s.id()
	}
	s.st.slots[slot.ID] = slot
	return slot.ID
}

func (s *Store) PutBooking(b domain.Booking) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.st.bookings[b.ID] = b
	return b.ID
}

func (s *Store) PutRequest(r domain.BookingRequest) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	s.st.requests[r.ID] = r
	return r.ID
}

// Inspection helpers

func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.bookings[id]
	return b, ok
}

func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, 0, len(s.st.bookings))
	for _, b := range s.st.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Request(id int64) (domain.BookingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.requests[id]
	return r, ok
}

func (s *Store) Slots() []domain.AvailabilitySlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AvailabilitySlot, 0, len(s.st.slots))
	for _, sl := range s.st.slots {
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Account(id int64) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.accounts[id]
	return a, ok
}

// Accounts

type Accounts struct{ s *Store }

func (s *Store) Accounts() *Accounts { return &Accounts{s} }

func (r *Accounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.st.accounts[id]
	if !ok || acc.DeletedAt != nil {
		return nil, accountRepo.ErrAccountNotFound
	}
	acc.Roles = append([]domain.Role(nil), acc.Roles...)
	return &acc, nil
}

func (r *Accounts) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *Accounts) UpdateActiveRole(_ context.Context, id int64, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.st.accounts[id]
	if !ok || !acc.HasRole(role) {
		return accountRepo.ErrAccountNotFound
	}
	acc.ActiveRole = role
	r.s.st.accounts[id] = acc
	return nil
}

func (r *Accounts) AddRole(_ context.Context, id int64, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.st.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	acc.Roles = append([]domain.Role(nil), acc.Roles...)
	acc.GrantRole(role)
	r.s.st.accounts[id] = acc
	return nil
}

func (r *Accounts) ListByIDs(_ context.Context, ids []int64) (map[int64]*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[int64]*domain.Account, len(ids))
	for _, id := range ids {
		if acc, ok := r.s.st.accounts[id]; ok && acc.DeletedAt == nil {
			a := acc
			out[id] = &a
		}
	}
	return out, nil
}

// Verifications

type Verifications struct{ s *Store }

func (s *Store) Verifications() *Verifications { return &Verifications{s} }

func (r *Verifications) Get(_ context.Context, accountID int64) (*domain.ClientVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.verifications[accountID]
	if !ok {
		return nil, verificationRepo.ErrVerificationNotFound
	}
	return &v, nil
}

func (r *Verifications) GetForUpdate(ctx context.Context, accountID int64) (*domain.ClientVerification, error) {
	return r.Get(ctx, accountID)
}

func (r *Verifications) Save(_ context.Context, v *domain.ClientVerification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	if old, ok := r.s.st.verifications[v.AccountID]; ok {
		v.CreatedAt = old.CreatedAt
	} else {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	r.s.st.verifications[v.AccountID] = *v
	return nil
}

func (r *Verifications) UpdateReview(_ context.Context, v *domain.ClientVerification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.st.verifications[v.AccountID]
	if !ok {
		return verificationRepo.ErrVerificationNotFound
	}
	old.Review = v.Review
	r.s.st.verifications[v.AccountID] = old
	return nil
}

func (r *Verifications) ListByStatus(_ context.Context, status domain.ReviewStatus) ([]*domain.ClientVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.ClientVerification, 0)
	for _, v := range r.s.st.verifications {
		if v.Status == status {
			cp := v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// Applications

type Applications struct{ s *Store }

func (s *Store) Applications() *Applications { return &Applications{s} }

func (r *Applications) Create(_ context.Context, app *domain.CompanionApplication) (*domain.CompanionApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.applications {
		if existing.AccountID == app.AccountID && existing.Status == domain.ReviewPending {
			return nil, domain.ErrAlreadyPending
		}
	}
	app.ID = r.s.id()
	app.CreatedAt = r.s.Now()
	app.UpdatedAt = app.CreatedAt
	r.s.st.applications[app.ID] = *app
	return app, nil
}

func (r *Applications) GetByID(_ context.Context, id int64) (*domain.CompanionApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.st.applications[id]
	if !ok {
		return nil, applicationRepo.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *Applications) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CompanionApplication, error) {
	return r.GetByID(ctx, id)
}

func (r *Applications) latest(accountID int64, status *domain.ReviewStatus) (*domain.CompanionApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *domain.CompanionApplication
	for _, app := range r.s.st.applications {
		if app.AccountID != accountID || (status != nil && app.Status != *status) {
			continue
		}
		if found == nil || app.ID > found.ID {
			cp := app
			found = &cp
		}
	}
	if found == nil {
		return nil, applicationRepo.ErrApplicationNotFound
	}
	return found, nil
}

func (r *Applications) GetLatestByAccount(_ context.Context, accountID int64) (*domain.CompanionApplication, error) {
	return r.latest(accountID, nil)
}

func (r *Applications) GetApprovedByAccount(_ context.Context, accountID int64) (*domain.CompanionApplication, error) {
	approved := domain.ReviewApproved
	return r.latest(accountID, &approved)
}

func (r *Applications) UpdateReview(_ context.Context, app *domain.CompanionApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.st.applications[app.ID]
	if !ok {
		return applicationRepo.ErrApplicationNotFound
	}
	old.Review = app.Review
	r.s.st.applications[app.ID] = old
	return nil
}

func (r *Applications) ListByStatus(_ context.Context, status domain.ReviewStatus) ([]*domain.CompanionApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.CompanionApplication, 0)
	for _, app := range r.s.st.applications {
		if app.Status == status {
			cp := app
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Applications) ListApprovedCompanions(_ context.Context, service *domain.ServiceTag) ([]*domain.CompanionProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.CompanionProfile, 0)
	for _, app := range r.s.st.applications {
		if app.Status != domain.ReviewApproved {
			continue
		}
		acc, ok := r.s.st.accounts[app.AccountID]
		if !ok || acc.DeletedAt != nil || !acc.HasRole(domain.RoleCompanion) {
			continue
		}
		if service != nil && !app.ServicesOffered.Contains(*service) {
			continue
		}
		a, cp := acc, app
		out = append(out, domain.ProfileFromApplication(&a, &cp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// Slots

type Slots struct{ s *Store }

func (s *Store) SlotRepo() *Slots { return &Slots{s} }

func (r *Slots) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot.ID = r.s.id()
	slot.CreatedAt = r.s.Now()
	slot.UpdatedAt = slot.CreatedAt
	r.s.st.slots[slot.ID] = *slot
	return slot, nil
}

func (r *Slots) GetByID(_ context.Context, id int64) (*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.st.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *Slots) GetByIDForUpdate(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	return r.GetByID(ctx, id)
}

func (r *Slots) filter(keep func(domain.AvailabilitySlot) bool) []*domain.AvailabilitySlot {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.AvailabilitySlot, 0)
	for _, slot := range r.s.st.slots {
		if keep(slot) {
			cp := slot
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return dayIndex(out[i].DayOfWeek) < dayIndex(out[j].DayOfWeek)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func dayIndex(d domain.DayOfWeek) int {
	for i, day := range domain.Week {
		if day == d {
			return i
		}
	}
	return len(domain.Week)
}

func (r *Slots) ListByCompanion(_ context.Context, companionID int64) ([]*domain.AvailabilitySlot, error) {
	return r.filter(func(s domain.AvailabilitySlot) bool { return s.CompanionID == companionID }), nil
}

func (r *Slots) ListByCompanionAndDay(_ context.Context, companionID int64, day domain.DayOfWeek) ([]*domain.AvailabilitySlot, error) {
	return r.filter(func(s domain.AvailabilitySlot) bool {
		return s.CompanionID == companionID && s.DayOfWeek == day
	}), nil
}

func (r *Slots) Update(_ context.Context, slot *domain.AvailabilitySlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.slots[slot.ID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.UpdatedAt = r.s.Now()
	r.s.st.slots[slot.ID] = *slot
	return nil
}

func (r *Slots) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.s.st.slots, id)
	return nil
}

// Bookings

type Bookings struct{ s *Store }

func (s *Store) BookingRepo() *Bookings { return &Bookings{s} }

func (r *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	b.CreatedAt = r.s.Now()
	b.UpdatedAt = b.CreatedAt
	r.s.st.bookings[b.ID] = *b
	return b, nil
}

func (r *Bookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *Bookings) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *Bookings) List(_ context.Context, f domain.BookingFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.s.st.bookings {
		switch {
		case f.ClientID != nil && b.ClientID != *f.ClientID:
			continue
		case f.CompanionID != nil && b.CompanionID != *f.CompanionID:
			continue
		case f.StartDate != nil && b.BookingDate.Before(*f.StartDate):
			continue
		case f.EndDate != nil && b.BookingDate.After(*f.EndDate):
			continue
		case f.Status != nil && b.Status != *f.Status:
			continue
		case f.Status == nil && !f.IncludeCancelled && b.Status == domain.StatusCancelled:
			continue
		}
		cp := b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.Before(out[j].BookingDate)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *Bookings) GetBlockingByCompanionAndDate(ctx context.Context, companionID int64, date time.Time) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingFilter{CompanionID: &companionID, StartDate: &date, EndDate: &date})
}

func (r *Bookings) UpdateStatus(_ context.Context, b *domain.Booking, from domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.st.bookings[b.ID]
	if !ok || old.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.UpdatedAt = r.s.Now()
	r.s.st.bookings[b.ID] = *b
	return nil
}

// Booking requests

type Requests struct{ s *Store }

func (s *Store) RequestRepo() *Requests { return &Requests{s} }

func (r *Requests) Create(_ context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = r.s.id()
	req.CreatedAt = r.s.Now()
	req.UpdatedAt = req.CreatedAt
	r.s.st.requests[req.ID] = *req
	return req, nil
}

func (r *Requests) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.st.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	return &req, nil
}

func (r *Requests) GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *Requests) List(_ context.Context, f domain.BookingRequestFilter) ([]*domain.BookingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.BookingRequest, 0)
	for _, req := range r.s.st.requests {
		if f.ClientID != nil && req.ClientID != *f.ClientID {
			continue
		}
		if f.CompanionID != nil && req.CompanionID != *f.CompanionID {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		cp := req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Requests) UpdateResponse(_ context.Context, req *domain.BookingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.requests[req.ID]; !ok {
		return requestRepo.ErrRequestNotFound
	}
	r.s.st.requests[req.ID] = *req
	return nil
}

// Favorites

type Favorites struct{ s *Store }

func (s *Store) FavoriteRepo() *Favorites { return &Favorites{s} }

func (r *Favorites) Add(_ context.Context, clientID, companionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := favoriteKey{clientID, companionID}
	if _, ok := r.s.st.favorites[key]; !ok {
		r.s.st.favorites[key] = r.s.Now()
	}
	return nil
}

func (r *Favorites) Remove(_ context.Context, clientID, companionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := favoriteKey{clientID, companionID}
	if _, ok := r.s.st.favorites[key]; !ok {
		return favoriteRepo.ErrFavoriteNotFound
	}
	delete(r.s.st.favorites, key)
	return nil
}

func (r *Favorites) ListByClient(_ context.Context, clientID int64) ([]*domain.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Favorite, 0)
	for key, at := range r.s.st.favorites {
		if key.client == clientID {
			out = append(out, &domain.Favorite{ClientID: key.client, CompanionID: key.companion, CreatedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanionID < out[j].CompanionID })
	return out, nil
}
