package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/model"
)

type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Update(ctx context.Context, userID uuid.UUID, mutate func(profile *model.UserProfile, badges []model.Badge) error) (*model.UserProfile, error)
}

// PointsApplier adjusts a user's points. Implementations keep points
// non-negative and level and badges consistent with the new total.
type PointsApplier interface {
	ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int) (*model.UserProfile, error)
}

type ProfileService struct {
	store ProfileStore
	log   zerolog.Logger
}

var _ PointsApplier = (*ProfileService)(nil)

func NewProfileService(store ProfileStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{store: store, log: log}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.store.GetOrCreate(ctx, userID)
}

func (s *ProfileService) ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int) (*model.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var awarded []string
	profile, err := s.store.Update(ctx, userID, func(profile *model.UserProfile, badges []model.Badge) error {
		awarded = applyDelta(profile, badges, delta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(awarded) > 0 {
		s.log.Info().
			Str("user_id", userID.String()).
			Strs("badges", awarded).
			Int("points", profile.Points).
			Msg("badges awarded")
	}
	return profile, nil
}

// AdjustPoints is ApplyPointsDelta on behalf of a staff member.
func (s *ProfileService) AdjustPoints(ctx context.Context, actor model.Principal, userID uuid.UUID, delta int) (*model.UserProfile, error) {
	if !actor.IsStaffMember() {
		return nil, ErrPermissionDenied
	}
	return s.ApplyPointsDelta(ctx, userID, delta)
}

// applyDelta updates points, level and badges in place and returns the names
// of newly awarded badges. Badges already held are never removed.
func applyDelta(profile *model.UserProfile, badges []model.Badge, delta int) []string {
	points := profile.Points + delta
	if points < 0 {
		points = 0
	}
	profile.Points = points
	profile.Level = model.LevelForPoints(points)

	var awarded []string
	for _, badge := range badges {
		if badge.PointsRequired > points || profile.HasBadge(badge.Name) {
			continue
		}
		profile.Badges = append(profile.Badges, badge.Name)
		awarded = append(awarded, badge.Name)
	}
	return awarded
}
