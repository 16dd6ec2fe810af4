package reviews

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type ReviewsStorage interface {
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	GetForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error)
	ExistsForAuthorTitle(ctx context.Context, authorID, titleID int64) (bool, error)
	Insert(ctx context.Context, titleID, authorID int64, text string, score int32) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

// TitleProvider confirms the parent title exists before reviews are
// listed or written under it.
type TitleProvider interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
	titles  TitleProvider
}

func New(log *slog.Logger, storage ReviewsStorage, titles TitleProvider) *ReviewService {
	return &ReviewService{log: log, storage: storage, titles: titles}
}

func (s *ReviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	review, err := s.storage.Get(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		s.log.With("op", op, "review_id", reviewID).Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	const op = "reviews.ReviewService.ListForTitle"
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	reviews, count, err := s.storage.GetForTitle(ctx, titleID, f)
	if err != nil {
		s.log.With("op", op, "title_id", titleID).Error(err.Error())
		return nil, 0, err
	}
	return reviews, count, nil
}

// Create enforces one review per (author, title). The pre-check keeps the
// common case friendly; the unique constraint in the store settles races
// between concurrent submissions.
func (s *ReviewService) Create(ctx context.Context, titleID int64, author *models.User, text string, score int32) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "title_id", titleID, "author", author.Username)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	exists, err := s.storage.ExistsForAuthorTitle(ctx, author.ID, titleID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if exists {
		log.Info("duplicate review rejected")
		return nil, ErrAlreadyReviewed
	}
	review, err := s.storage.Insert(ctx, titleID, author.ID, text, score)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("duplicate review rejected by constraint")
			return nil, ErrAlreadyReviewed
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// Update deliberately skips the uniqueness guard: editing your own review
// is not a second review.
func (s *ReviewService) Update(ctx context.Context, titleID, reviewID int64, text *string, score *int32) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		s.log.With("op", op, "review_id", reviewID).Error(err.Error())
		return nil, err
	}
	return updated, nil
}

// Delete removes the review and, through the store's cascade, its comments.
func (s *ReviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	const op = "reviews.ReviewService.Delete"
	if err := s.storage.Delete(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		s.log.With("op", op, "review_id", reviewID).Error(err.Error())
		return err
	}
	return nil
}
