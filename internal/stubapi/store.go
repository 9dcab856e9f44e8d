// Package stubapi is an in-memory implementation of the gym backend HTTP
// contract the console consumes. It backs cmd/stubserver for local
// development and the package tests, and is the arbiter for the
// backend-owned rules: roster dedup, join projection, credential checks.
package stubapi

import (
	"errors"
	"sync"
	"time"

	"gymdesk/console/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadCredential = errors.New("invalid credentials")
)

// account is a login-capable record (manager, trainer, or member).
type account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

type memberRecord struct {
	account
	Age            int
	MembershipType string
	ContactInfo    string
	// TrainerID is a weak reference; empty means unassigned.
	TrainerID string
}

type trainerRecord struct {
	account
	Age         int
	ContactInfo string
}

type scheduleRecord struct {
	ID        string
	Title     string
	Date      string
	Time      string
	TrainerID string
	// MemberIDs keeps enrollment order; the set is deduplicated here,
	// never by the client.
	MemberIDs []string
}

// Store holds all backend state behind one lock. Ids are ObjectID hex
// strings, matching what the production backend issues.
type Store struct {
	mu        sync.Mutex
	managers  map[string]*account
	trainers  map[string]*trainerRecord
	members   map[string]*memberRecord
	schedules map[string]*scheduleRecord
	// insertion order for stable listings
	trainerOrder  []string
	memberOrder   []string
	scheduleOrder []string

	// Now is swappable so tests can pin "today" for the dashboard count.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		managers:  make(map[string]*account),
		trainers:  make(map[string]*trainerRecord),
		members:   make(map[string]*memberRecord),
		schedules: make(map[string]*scheduleRecord),
		Now:       time.Now,
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// AddManager registers a manager account (managers exist only via seeding;
// the contract exposes no manager CRUD).
func (s *Store) AddManager(name, email, password string) (string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(email) {
		return "", ErrEmailTaken
	}
	id := newID()
	s.managers[id] = &account{ID: id, Name: name, Email: email, PasswordHash: hash}
	return id, nil
}

func (s *Store) emailTakenLocked(email string) bool {
	for _, a := range s.managers {
		if a.Email == email {
			return true
		}
	}
	for _, t := range s.trainers {
		if t.Email == email {
			return true
		}
	}
	for _, m := range s.members {
		if m.Email == email {
			return true
		}
	}
	return false
}

// Authenticate verifies credentials for one role and returns the identity.
func (s *Store) Authenticate(role domain.Role, email, password string) (domain.Identity, error) {
	s.mu.Lock()
	var acct *account
	switch role {
	case domain.RoleManager:
		for _, a := range s.managers {
			if a.Email == email {
				acct = a
				break
			}
		}
	case domain.RoleTrainer:
		for _, t := range s.trainers {
			if t.Email == email {
				acct = &t.account
				break
			}
		}
	case domain.RoleMember:
		for _, m := range s.members {
			if m.Email == email {
				acct = &m.account
				break
			}
		}
	}
	s.mu.Unlock()

	if acct == nil {
		return domain.Identity{}, ErrBadCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, ErrBadCredential
	}
	return domain.Identity{ID: acct.ID, Name: acct.Name, Email: acct.Email}, nil
}

// --- members ---

func (s *Store) CreateMember(p domain.MemberCreate) (domain.Member, error) {
	hash, err := hashPassword(p.Password)
	if err != nil {
		return domain.Member{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(p.Email) {
		return domain.Member{}, ErrEmailTaken
	}
	id := newID()
	rec := &memberRecord{
		account:        account{ID: id, Name: p.Name, Email: p.Email, PasswordHash: hash},
		Age:            p.Age,
		MembershipType: p.MembershipType,
		ContactInfo:    p.ContactInfo,
	}
	s.members[id] = rec
	s.memberOrder = append(s.memberOrder, id)
	return s.memberOutLocked(rec), nil
}

func (s *Store) UpdateMember(id string, p domain.MemberUpdate) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.members[id]
	if !ok {
		return domain.Member{}, ErrNotFound
	}
	rec.Name = p.Name
	rec.Age = p.Age
	rec.Email = p.Email
	rec.MembershipType = p.MembershipType
	rec.ContactInfo = p.ContactInfo
	return s.memberOutLocked(rec), nil
}

func (s *Store) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return ErrNotFound
	}
	delete(s.members, id)
	s.memberOrder = removeID(s.memberOrder, id)
	// Rosters drop the member; schedules themselves are untouched.
	for _, sch := range s.schedules {
		sch.MemberIDs = removeID(sch.MemberIDs, id)
	}
	return nil
}

func (s *Store) ListMembers() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Member, 0, len(s.memberOrder))
	for _, id := range s.memberOrder {
		out = append(out, s.memberOutLocked(s.members[id]))
	}
	return out
}

func (s *Store) GetMember(id string) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.members[id]
	if !ok {
		return domain.Member{}, ErrNotFound
	}
	return s.memberOutLocked(rec), nil
}

// AssignTrainer sets the member's trainer, last write wins. Existing
// schedule rosters are not rewritten.
func (s *Store) AssignTrainer(memberID, trainerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.members[memberID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.trainers[trainerID]; !ok {
		return ErrNotFound
	}
	rec.TrainerID = trainerID
	return nil
}

// AssignedTrainer returns the member's trainer, ErrNotFound when none.
func (s *Store) AssignedTrainer(memberID string) (domain.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.members[memberID]
	if !ok || rec.TrainerID == "" {
		return domain.Trainer{}, ErrNotFound
	}
	t, ok := s.trainers[rec.TrainerID]
	if !ok {
		return domain.Trainer{}, ErrNotFound
	}
	return trainerOut(t), nil
}

// memberOutLocked projects a member record with its trainer joined in.
func (s *Store) memberOutLocked(rec *memberRecord) domain.Member {
	out := domain.Member{
		ID:             rec.ID,
		Name:           rec.Name,
		Age:            rec.Age,
		Email:          rec.Email,
		MembershipType: rec.MembershipType,
		ContactInfo:    rec.ContactInfo,
	}
	if rec.TrainerID != "" {
		if t, ok := s.trainers[rec.TrainerID]; ok {
			out.Trainer = &domain.TrainerRef{ID: t.ID, Name: t.Name, Email: t.Email, ContactInfo: t.ContactInfo}
		}
	}
	return out
}

// --- trainers ---

func (s *Store) CreateTrainer(p domain.TrainerCreate) (domain.Trainer, error) {
	hash, err := hashPassword(p.Password)
	if err != nil {
		return domain.Trainer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(p.Email) {
		return domain.Trainer{}, ErrEmailTaken
	}
	id := newID()
	rec := &trainerRecord{
		account:     account{ID: id, Name: p.Name, Email: p.Email, PasswordHash: hash},
		Age:         p.Age,
		ContactInfo: p.ContactInfo,
	}
	s.trainers[id] = rec
	s.trainerOrder = append(s.trainerOrder, id)
	return trainerOut(rec), nil
}

func (s *Store) UpdateTrainer(id string, p domain.TrainerUpdate) (domain.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.trainers[id]
	if !ok {
		return domain.Trainer{}, ErrNotFound
	}
	rec.Name = p.Name
	rec.Age = p.Age
	rec.Email = p.Email
	rec.ContactInfo = p.ContactInfo
	return trainerOut(rec), nil
}

func (s *Store) DeleteTrainer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[id]; !ok {
		return ErrNotFound
	}
	delete(s.trainers, id)
	s.trainerOrder = removeID(s.trainerOrder, id)
	// Members whose trainer disappears become unassigned.
	for _, m := range s.members {
		if m.TrainerID == id {
			m.TrainerID = ""
		}
	}
	return nil
}

func (s *Store) ListTrainers() []domain.Trainer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trainer, 0, len(s.trainerOrder))
	for _, id := range s.trainerOrder {
		out = append(out, trainerOut(s.trainers[id]))
	}
	return out
}

// MembersOfTrainer returns the members assigned to a trainer.
func (s *Store) MembersOfTrainer(trainerID string) []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Member
	for _, id := range s.memberOrder {
		if s.members[id].TrainerID == trainerID {
			out = append(out, s.memberOutLocked(s.members[id]))
		}
	}
	return out
}

func trainerOut(rec *trainerRecord) domain.Trainer {
	return domain.Trainer{
		ID:          rec.ID,
		Name:        rec.Name,
		Age:         rec.Age,
		Email:       rec.Email,
		ContactInfo: rec.ContactInfo,
	}
}

// --- schedules ---

func (s *Store) CreateSchedule(p domain.ScheduleCreate) (domain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[p.TrainerID]; !ok {
		return domain.Schedule{}, ErrNotFound
	}
	id := newID()
	rec := &scheduleRecord{
		ID:        id,
		Title:     p.Title,
		Date:      p.Date,
		Time:      p.Time,
		TrainerID: p.TrainerID,
	}
	s.schedules[id] = rec
	s.scheduleOrder = append(s.scheduleOrder, id)
	return s.scheduleOutLocked(rec), nil
}

func (s *Store) DeleteSchedule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[id]; !ok {
		return ErrNotFound
	}
	delete(s.schedules, id)
	s.scheduleOrder = removeID(s.scheduleOrder, id)
	return nil
}

// ListSchedules returns schedules, optionally restricted to one date.
func (s *Store) ListSchedules(date string) []domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Schedule, 0, len(s.scheduleOrder))
	for _, id := range s.scheduleOrder {
		rec := s.schedules[id]
		if date != "" && rec.Date != date {
			continue
		}
		out = append(out, s.scheduleOutLocked(rec))
	}
	return out
}

// AddMemberToSchedule enrolls a member, deduplicating the roster. A
// replay with an already-enrolled member succeeds without effect.
func (s *Store) AddMemberToSchedule(scheduleID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.schedules[scheduleID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.members[memberID]; !ok {
		return ErrNotFound
	}
	for _, id := range rec.MemberIDs {
		if id == memberID {
			return nil
		}
	}
	rec.MemberIDs = append(rec.MemberIDs, memberID)
	return nil
}

// SchedulesOfTrainer returns the schedules a trainer leads.
func (s *Store) SchedulesOfTrainer(trainerID string) []domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Schedule
	for _, id := range s.scheduleOrder {
		if s.schedules[id].TrainerID == trainerID {
			out = append(out, s.scheduleOutLocked(s.schedules[id]))
		}
	}
	return out
}

// SchedulesOfMember returns the schedules a member is enrolled in.
func (s *Store) SchedulesOfMember(memberID string) []domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Schedule
	for _, id := range s.scheduleOrder {
		rec := s.schedules[id]
		for _, mid := range rec.MemberIDs {
			if mid == memberID {
				out = append(out, s.scheduleOutLocked(rec))
				break
			}
		}
	}
	return out
}

// scheduleOutLocked projects a schedule with trainer and roster joined in.
func (s *Store) scheduleOutLocked(rec *scheduleRecord) domain.Schedule {
	out := domain.Schedule{
		ID:      rec.ID,
		Title:   rec.Title,
		Date:    rec.Date,
		Time:    rec.Time,
		Members: []domain.MemberRef{},
	}
	if t, ok := s.trainers[rec.TrainerID]; ok {
		out.Trainer = &domain.TrainerRef{ID: t.ID, Name: t.Name}
	}
	for _, mid := range rec.MemberIDs {
		if m, ok := s.members[mid]; ok {
			out.Members = append(out.Members, domain.MemberRef{ID: m.ID, Name: m.Name})
		}
	}
	return out
}

// DashboardStats computes the aggregate counts; "today" comes from Now.
func (s *Store) DashboardStats() domain.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.Now().Format("2006-01-02")
	stats := domain.DashboardStats{
		TotalMembers:  len(s.members),
		TotalTrainers: len(s.trainers),
	}
	for _, rec := range s.schedules {
		if rec.Date == today {
			stats.TodaySchedules++
		}
	}
	return stats
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
