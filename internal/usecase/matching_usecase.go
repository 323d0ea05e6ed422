package usecase

import (
	"context"
	"errors"
	"time"

	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/pkg/apperror"
)

// RecommendationCache is an optional read-through cache for recommendation
// shortlists. Scores are advisory and computed from a point-in-time
// snapshot, so serving a slightly stale shortlist is acceptable. All
// methods are best-effort: a cache failure must degrade to a recompute.
type RecommendationCache interface {
	GetCounselors(ctx context.Context, userID string) ([]domain.ScoredCounselor, bool)
	SetCounselors(ctx context.Context, userID string, scored []domain.ScoredCounselor)
	GetFamilyGroups(ctx context.Context, userID string) ([]domain.ScoredFamilyGroup, bool)
	SetFamilyGroups(ctx context.Context, userID string, scored []domain.ScoredFamilyGroup)
	Invalidate(ctx context.Context, userID string)
}

type matchingUsecase struct {
	profileRepo   domain.ProfileRepository
	counselorRepo domain.CounselorRepository
	groupRepo     domain.FamilyGroupRepository
	matchingRepo  domain.MatchingRepository
	cache         RecommendationCache
}

// NewMatchingUsecase creates the matching usecase. cache may be nil, in
// which case every recommendation is computed from the stores.
func NewMatchingUsecase(
	profileRepo domain.ProfileRepository,
	counselorRepo domain.CounselorRepository,
	groupRepo domain.FamilyGroupRepository,
	matchingRepo domain.MatchingRepository,
	cache RecommendationCache,
) domain.MatchingUsecase {
	return &matchingUsecase{
		profileRepo:   profileRepo,
		counselorRepo: counselorRepo,
		groupRepo:     groupRepo,
		matchingRepo:  matchingRepo,
		cache:         cache,
	}
}

// resolveAttributes loads the person's survey and normalizes it into the
// scoring-relevant attributes.
func (uc *matchingUsecase) resolveAttributes(ctx context.Context, userID string) (domain.MatchAttributes, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MatchAttributes{}, apperror.NotFound("User profile not found")
		}
		return domain.MatchAttributes{}, apperror.Internal(err)
	}
	return profile.MatchAttributes(time.Now()), nil
}

// RecommendCounselors scores every available counselor against the
// person's survey and returns the top shortlist, highest score first.
func (uc *matchingUsecase) RecommendCounselors(ctx context.Context, userID string) ([]domain.ScoredCounselor, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetCounselors(ctx, userID); ok {
			return cached, nil
		}
	}

	attrs, err := uc.resolveAttributes(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := uc.counselorRepo.ListAvailable(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	scored := rankCounselors(attrs, pool)

	if uc.cache != nil {
		uc.cache.SetCounselors(ctx, userID, scored)
	}
	return scored, nil
}

// RecommendFamilyGroups is the group counterpart of RecommendCounselors.
// The pool is already filtered to active groups with open seats.
func (uc *matchingUsecase) RecommendFamilyGroups(ctx context.Context, userID string) ([]domain.ScoredFamilyGroup, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetFamilyGroups(ctx, userID); ok {
			return cached, nil
		}
	}

	attrs, err := uc.resolveAttributes(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := uc.groupRepo.ListOpen(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	scored := rankFamilyGroups(attrs, pool, time.Now())

	if uc.cache != nil {
		uc.cache.SetFamilyGroups(ctx, userID, scored)
	}
	return scored, nil
}

func (uc *matchingUsecase) ListCounselors(ctx context.Context) ([]domain.Counselor, error) {
	counselors, err := uc.counselorRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return counselors, nil
}

func (uc *matchingUsecase) GetCounselor(ctx context.Context, id int64) (*domain.Counselor, error) {
	counselor, err := uc.counselorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Counselor not found")
		}
		return nil, apperror.Internal(err)
	}
	return counselor, nil
}

func (uc *matchingUsecase) ListFamilyGroups(ctx context.Context) ([]domain.FamilyGroup, error) {
	groups, err := uc.groupRepo.FetchActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return groups, nil
}

func (uc *matchingUsecase) GetFamilyGroup(ctx context.Context, id int64) (*domain.FamilyGroup, error) {
	group, err := uc.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Family group not found")
		}
		return nil, apperror.Internal(err)
	}
	return group, nil
}

// CreateCounselorMatching creates a PENDING match request between the
// person and a counselor. The score is computed here, stored on the record
// and never recomputed.
func (uc *matchingUsecase) CreateCounselorMatching(ctx context.Context, userID string, counselorID int64) (*domain.Matching, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found")
		}
		return nil, apperror.Internal(err)
	}

	counselor, err := uc.counselorRepo.GetByID(ctx, counselorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Counselor not found")
		}
		return nil, apperror.Internal(err)
	}

	if counselor.Status != domain.CounselorAvailable {
		return nil, apperror.Conflict("This counselor is currently not accepting new sessions")
	}

	// Fast-path duplicate check; the real guarantee is the partial unique
	// index enforced by the matching store.
	existing, err := uc.matchingRepo.FindPending(ctx, userID, domain.MatchTypeCounselor, counselorID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("A matching request with this counselor is already pending")
	}

	score := ScoreCounselor(profile.MatchAttributes(time.Now()), counselor)

	m := &domain.Matching{
		Type:        domain.MatchTypeCounselor,
		Status:      domain.MatchPending,
		MatchScore:  score,
		UserID:      userID,
		CounselorID: &counselorID,
	}
	if err := uc.matchingRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicatePending) {
			return nil, apperror.Conflict("A matching request with this counselor is already pending")
		}
		return nil, apperror.Internal(err)
	}

	return m, nil
}

// CreateFamilyGroupMatching creates a PENDING join request for a family
// group. The capacity precondition is checked here; committing a member
// seat on acceptance is owned by the group store.
func (uc *matchingUsecase) CreateFamilyGroupMatching(ctx context.Context, userID string, familyGroupID int64) (*domain.Matching, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found")
		}
		return nil, apperror.Internal(err)
	}

	group, err := uc.groupRepo.GetByID(ctx, familyGroupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Family group not found")
		}
		return nil, apperror.Internal(err)
	}

	if group.Status != domain.GroupActive {
		return nil, apperror.Conflict("This group is not currently active")
	}
	if group.IsFull() {
		return nil, apperror.Conflict("This group is already at full capacity")
	}

	existing, err := uc.matchingRepo.FindPending(ctx, userID, domain.MatchTypeFamilyGroup, familyGroupID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("A join request for this group is already pending")
	}

	score := ScoreFamilyGroup(profile.MatchAttributes(time.Now()), group, time.Now())

	m := &domain.Matching{
		Type:          domain.MatchTypeFamilyGroup,
		Status:        domain.MatchPending,
		MatchScore:    score,
		UserID:        userID,
		FamilyGroupID: &familyGroupID,
	}
	if err := uc.matchingRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicatePending) {
			return nil, apperror.Conflict("A join request for this group is already pending")
		}
		return nil, apperror.Internal(err)
	}

	return m, nil
}

// UpdateMatchingStatus applies an explicit status transition. The stored
// score is never touched; completedAt is stamped only for COMPLETED.
func (uc *matchingUsecase) UpdateMatchingStatus(ctx context.Context, matchingID int64, status domain.MatchStatus, notes, rejectionReason *string) (*domain.Matching, error) {
	validStatuses := map[domain.MatchStatus]bool{
		domain.MatchAccepted:  true,
		domain.MatchRejected:  true,
		domain.MatchCancelled: true,
		domain.MatchCompleted: true,
	}
	if !validStatuses[status] {
		return nil, apperror.BadRequest("Invalid status. Must be: ACCEPTED, REJECTED, CANCELLED or COMPLETED")
	}

	m, err := uc.matchingRepo.GetByID(ctx, matchingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Matching not found")
		}
		return nil, apperror.Internal(err)
	}

	m.Status = status
	if notes != nil {
		m.Notes = notes
	}
	if rejectionReason != nil {
		m.RejectionReason = rejectionReason
	}
	if status == domain.MatchCompleted {
		now := time.Now()
		m.CompletedAt = &now
	}

	if err := uc.matchingRepo.Update(ctx, m); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Matching not found")
		}
		return nil, apperror.Internal(err)
	}
	return m, nil
}

// GetUserMatchings lists the person's match records newest first,
// optionally filtered by type.
func (uc *matchingUsecase) GetUserMatchings(ctx context.Context, userID string, typeFilter *domain.MatchType) ([]domain.Matching, error) {
	matchings, err := uc.matchingRepo.ListByUser(ctx, userID, typeFilter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return matchings, nil
}
