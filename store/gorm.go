package store

import (
	"context"
	"errors"
	"time"

	"github.com/bingolive/bingo-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gorm is the postgres-backed Store. Every mutation is one UPDATE on
// one row; row-level atomicity is all the engine asks for.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) CreateRound(ctx context.Context) (*models.Round, error) {
	round := models.Round{
		Status:       models.RoundActive,
		DrawnNumbers: datatypes.JSONSlice[int]{},
	}
	if err := s.db.WithContext(ctx).Create(&round).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Gorm) GetRound(ctx context.Context, id uint) (*models.Round, error) {
	var round models.Round
	if err := s.db.WithContext(ctx).First(&round, id).Error; err != nil {
		return nil, translate(err)
	}
	return &round, nil
}

func (s *Gorm) GetActiveRound(ctx context.Context) (*models.Round, error) {
	var round models.Round
	err := s.db.WithContext(ctx).
		Where("status = ?", models.RoundActive).
		Order("created_at DESC").
		First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Gorm) ListRounds(ctx context.Context, ids []uint) ([]models.Round, error) {
	var rounds []models.Round
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

func (s *Gorm) SetRoundDraws(ctx context.Context, id uint, drawn []int) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("id = ? AND status = ?", id, models.RoundActive).
		Update("drawn_numbers", datatypes.JSONSlice[int](drawn))
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) FinishRound(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("id = ? AND status = ?", id, models.RoundActive).
		Updates(map[string]any{"status": models.RoundFinished, "finished_at": at})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) FinishActiveRounds(ctx context.Context, at time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("status = ?", models.RoundActive).
		Updates(map[string]any{"status": models.RoundFinished, "finished_at": at})
	return res.RowsAffected, res.Error
}

func (s *Gorm) CreateParticipant(ctx context.Context, p *models.Participant) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Gorm) GetParticipant(ctx context.Context, id uint) (*models.Participant, error) {
	var p models.Participant
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Gorm) SetParticipantMarks(ctx context.Context, id uint, marked []int) error {
	res := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("marked_numbers", datatypes.JSONSlice[int](marked))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) SetParticipantBingo(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ? AND has_bingo = ?", id, false).
		Updates(map[string]any{"has_bingo": true, "bingo_claimed_at": at})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) DeleteParticipant(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Participant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) ListParticipants(ctx context.Context, roundID uint, f ParticipantFilter) ([]models.Participant, error) {
	q := s.db.WithContext(ctx).Where("round_id = ?", roundID)
	if f.WinnersOnly {
		q = q.Where("has_bingo = ?", true)
	}
	switch f.Order {
	case OrderByClaimed:
		q = q.Order("bingo_claimed_at ASC, id ASC")
	default:
		q = q.Order("created_at ASC, id ASC")
	}
	var parts []models.Participant
	if err := q.Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *Gorm) ListParticipantsByUser(ctx context.Context, userID uint) ([]models.Participant, error) {
	var parts []models.Participant
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *Gorm) CreateProfile(ctx context.Context, p *models.Profile) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Gorm) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Gorm) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Gorm) UpdateProfile(ctx context.Context, id uint, fields map[string]any) error {
	res := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps gorm errors onto the store sentinels. Requires the DB
// to be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
