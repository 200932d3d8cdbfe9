package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bingolive/bingo-backend/models"
	"gorm.io/datatypes"
)

// Memory is a mutex-guarded map Store. It serializes every write the
// way a single-row database update would, which makes it a faithful
// stand-in for tests.
type Memory struct {
	mu                sync.Mutex
	nextRoundID       uint
	nextParticipantID uint
	nextProfileID     uint
	rounds            map[uint]*models.Round
	participants      map[uint]*models.Participant
	profiles          map[uint]*models.Profile
}

func NewMemory() *Memory {
	return &Memory{
		nextRoundID:       1,
		nextParticipantID: 1,
		nextProfileID:     1,
		rounds:            make(map[uint]*models.Round),
		participants:      make(map[uint]*models.Participant),
		profiles:          make(map[uint]*models.Profile),
	}
}

func (s *Memory) CreateRound(_ context.Context) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round := &models.Round{
		ID:           s.nextRoundID,
		Status:       models.RoundActive,
		DrawnNumbers: datatypes.JSONSlice[int]{},
		CreatedAt:    time.Now().UTC(),
	}
	s.nextRoundID++
	s.rounds[round.ID] = round
	return copyRound(round), nil
}

func (s *Memory) GetRound(_ context.Context, id uint) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRound(round), nil
}

func (s *Memory) GetActiveRound(_ context.Context) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Round
	for _, round := range s.rounds {
		if round.Status != models.RoundActive {
			continue
		}
		if latest == nil || round.CreatedAt.After(latest.CreatedAt) {
			latest = round
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyRound(latest), nil
}

func (s *Memory) ListRounds(_ context.Context, ids []uint) ([]models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Round
	if len(ids) == 0 {
		for _, round := range s.rounds {
			out = append(out, *copyRound(round))
		}
	} else {
		for _, id := range ids {
			if round, ok := s.rounds[id]; ok {
				out = append(out, *copyRound(round))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Memory) SetRoundDraws(_ context.Context, id uint, drawn []int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok || round.Status != models.RoundActive {
		return false, nil
	}
	round.DrawnNumbers = append(datatypes.JSONSlice[int]{}, drawn...)
	return true, nil
}

func (s *Memory) FinishRound(_ context.Context, id uint, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok || round.Status != models.RoundActive {
		return false, nil
	}
	round.Status = models.RoundFinished
	ts := at
	round.FinishedAt = &ts
	return true, nil
}

func (s *Memory) FinishActiveRounds(_ context.Context, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, round := range s.rounds {
		if round.Status != models.RoundActive {
			continue
		}
		round.Status = models.RoundFinished
		ts := at
		round.FinishedAt = &ts
		n++
	}
	return n, nil
}

func (s *Memory) CreateParticipant(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.participants {
		if existing.RoundID == p.RoundID && existing.UserID == p.UserID {
			return ErrDuplicate
		}
	}
	p.ID = s.nextParticipantID
	s.nextParticipantID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.MarkedNumbers == nil {
		p.MarkedNumbers = datatypes.JSONSlice[int]{}
	}
	s.participants[p.ID] = copyParticipant(p)
	return nil
}

func (s *Memory) GetParticipant(_ context.Context, id uint) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyParticipant(p), nil
}

func (s *Memory) SetParticipantMarks(_ context.Context, id uint, marked []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return ErrNotFound
	}
	p.MarkedNumbers = append(datatypes.JSONSlice[int]{}, marked...)
	return nil
}

func (s *Memory) SetParticipantBingo(_ context.Context, id uint, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok || p.HasBingo {
		return false, nil
	}
	p.HasBingo = true
	ts := at
	p.BingoClaimedAt = &ts
	return true, nil
}

func (s *Memory) DeleteParticipant(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[id]; !ok {
		return ErrNotFound
	}
	delete(s.participants, id)
	return nil
}

func (s *Memory) ListParticipants(_ context.Context, roundID uint, f ParticipantFilter) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Participant
	for _, p := range s.participants {
		if p.RoundID != roundID {
			continue
		}
		if f.WinnersOnly && !p.HasBingo {
			continue
		}
		out = append(out, *copyParticipant(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Order == OrderByClaimed {
			a, b := out[i].BingoClaimedAt, out[j].BingoClaimedAt
			switch {
			case a == nil && b != nil:
				return false
			case a != nil && b == nil:
				return true
			case a != nil && b != nil && !a.Equal(*b):
				return a.Before(*b)
			}
			return out[i].ID < out[j].ID
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Memory) ListParticipantsByUser(_ context.Context, userID uint) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Participant
	for _, p := range s.participants {
		if p.UserID == userID {
			out = append(out, *copyParticipant(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Memory) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.Email == p.Email {
			return ErrDuplicate
		}
	}
	p.ID = s.nextProfileID
	s.nextProfileID++
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *Memory) GetProfile(_ context.Context, id uint) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Memory) GetProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UpdateProfile(_ context.Context, id uint, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				p.Phone = v
			}
		case "avatar_url":
			switch v := value.(type) {
			case string:
				p.AvatarURL = &v
			case *string:
				p.AvatarURL = v
			}
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func copyRound(r *models.Round) *models.Round {
	cp := *r
	cp.DrawnNumbers = append(datatypes.JSONSlice[int]{}, r.DrawnNumbers...)
	if r.FinishedAt != nil {
		ts := *r.FinishedAt
		cp.FinishedAt = &ts
	}
	return &cp
}

func copyParticipant(p *models.Participant) *models.Participant {
	cp := *p
	cp.MarkedNumbers = append(datatypes.JSONSlice[int]{}, p.MarkedNumbers...)
	if p.BingoClaimedAt != nil {
		ts := *p.BingoClaimedAt
		cp.BingoClaimedAt = &ts
	}
	return &cp
}
