package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/shorescore/internal/domain"
)

// tagRepository is the subset of store.TagStore that VoteService requires.
type tagRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	ApplyVote(ctx context.Context, tagID int64, accountID string, score int) (*domain.Tag, error)
}

// featureRepository is the subset of store.FeatureStore that VoteService requires.
type featureRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Feature, error)
	ApplyScore(ctx context.Context, featureID int64, accountID string, score int) (*domain.Feature, error)
}

// voteRepository is the subset of store.VoteStore that VoteService requires.
type voteRepository interface {
	GetForAccount(ctx context.Context, accountID string, kind domain.VoteKind, parentID int64) (*domain.Vote, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Vote, error)
}

// accountRepository is the subset of store.AccountStore that VoteService requires.
type accountRepository interface {
	Create(ctx context.Context, name string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// VoteService applies community votes to tags and features. Votes on the same
// tag or feature are applied one at a time.
type VoteService struct {
	tagStore     tagRepository
	featureStore featureRepository
	voteStore    voteRepository
	accountStore accountRepository
	locks        *keyedMutex
	logger       *slog.Logger
}

func NewVoteService(
	tagStore tagRepository,
	featureStore featureRepository,
	voteStore voteRepository,
	accountStore accountRepository,
	logger *slog.Logger,
) *VoteService {
	return &VoteService{
		tagStore:     tagStore,
		featureStore: featureStore,
		voteStore:    voteStore,
		accountStore: accountStore,
		locks:        newKeyedMutex(),
		logger:       logger,
	}
}

func (s *VoteService) CreateAccount(ctx context.Context, name string) (*domain.Account, error) {
	account, err := s.accountStore.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "account_id", account.ID)
	return account, nil
}

func (s *VoteService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return account, nil
}

// AccountVotes lists every vote the account has cast.
func (s *VoteService) AccountVotes(ctx context.Context, accountID string) ([]*domain.Vote, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.voteStore.ListByAccount(ctx, accountID)
}

// VoteTag records a yes or no vote from accountID. Voting again replaces the
// account's earlier vote rather than adding to it.
func (s *VoteService) VoteTag(ctx context.Context, accountID string, tagID int64, score int) (*domain.Tag, error) {
	if !domain.ValidTagScore(score) {
		return nil, fmt.Errorf("tag score %d: %w", score, domain.ErrInvalidScore)
	}

	unlock := s.locks.Lock(fmt.Sprintf("tag:%d", tagID))
	defer unlock()

	tag, err := s.tagStore.ApplyVote(ctx, tagID, accountID, score)
	if err != nil {
		return nil, fmt.Errorf("failed to apply tag vote: %w", err)
	}

	s.logger.Info("tag vote applied",
		"tag_id", tagID,
		"account_id", accountID,
		"score", score,
		"yes", tag.Yes,
		"no", tag.No,
		"accuracy", tag.Accuracy,
	)
	return tag, nil
}

// TagUpdate projects a tag for accountID. An empty accountID yields a
// projection without a user score.
func (s *VoteService) TagUpdate(ctx context.Context, accountID string, tagID int64) (*TagUpdate, error) {
	tag, err := s.tagStore.GetByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if tag == nil {
		return nil, fmt.Errorf("tag %d: %w", tagID, domain.ErrNotFound)
	}

	userScore := domain.TagUnknown
	if accountID != "" {
		vote, err := s.voteStore.GetForAccount(ctx, accountID, domain.VoteKindTag, tagID)
		if err != nil {
			return nil, fmt.Errorf("failed to get vote: %w", err)
		}
		if vote != nil {
			userScore = vote.Score
		}
	}

	return NewTagUpdate(tag, userScore), nil
}

// ScoreFeature records accountID's rating of a feature, replacing any earlier
// rating by the same account.
func (s *VoteService) ScoreFeature(ctx context.Context, accountID string, featureID int64, score int) (*domain.Feature, error) {
	unlock := s.locks.Lock(fmt.Sprintf("feature:%d", featureID))
	defer unlock()

	feature, err := s.featureStore.ApplyScore(ctx, featureID, accountID, score)
	if err != nil {
		return nil, fmt.Errorf("failed to apply feature score: %w", err)
	}

	s.logger.Info("feature score applied", "feature_id", featureID, "account_id", accountID, "score", score)
	return feature, nil
}

func (s *VoteService) GetFeature(ctx context.Context, featureID int64) (*domain.Feature, error) {
	feature, err := s.featureStore.GetByID(ctx, featureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return nil, fmt.Errorf("feature %d: %w", featureID, domain.ErrNotFound)
	}
	return feature, nil
}
