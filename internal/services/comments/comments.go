package comments

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type CommentsStorage interface {
	Get(ctx context.Context, reviewID, commentID int64) (*models.Comment, error)
	GetForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error)
	Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, reviewID, commentID int64) error
}

// ReviewProvider scopes comment operations to a review that actually
// belongs to the addressed title.
type ReviewProvider interface {
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
}

type CommentService struct {
	log     *slog.Logger
	storage CommentsStorage
	reviews ReviewProvider
}

func New(log *slog.Logger, storage CommentsStorage, reviews ReviewProvider) *CommentService {
	return &CommentService{log: log, storage: storage, reviews: reviews}
}

func (s *CommentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	const op = "comments.CommentService.Get"
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Get(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		s.log.With("op", op, "comment_id", commentID).Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListForReview(ctx context.Context, titleID, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	const op = "comments.CommentService.ListForReview"
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	comments, count, err := s.storage.GetForReview(ctx, reviewID, f)
	if err != nil {
		s.log.With("op", op, "review_id", reviewID).Error(err.Error())
		return nil, 0, err
	}
	return comments, count, nil
}

func (s *CommentService) Create(ctx context.Context, titleID, reviewID int64, author *models.User, text string) (*models.Comment, error) {
	const op = "comments.CommentService.Create"
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Insert(ctx, reviewID, author.ID, text)
	if err != nil {
		s.log.With("op", op, "review_id", reviewID).Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, titleID, reviewID, commentID int64, text string) (*models.Comment, error) {
	const op = "comments.CommentService.Update"
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	updated, err := s.storage.Update(ctx, comment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		s.log.With("op", op, "comment_id", commentID).Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, titleID, reviewID, commentID int64) error {
	const op = "comments.CommentService.Delete"
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, reviewID, commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		s.log.With("op", op, "comment_id", commentID).Error(err.Error())
		return err
	}
	return nil
}
