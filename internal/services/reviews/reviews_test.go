package reviews

import (
	"context"
	"log/slog"
	"testing"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewsStorage struct {
	reviews  []*models.Review
	nextID   int64
	failWith error // forced Insert error, simulates a constraint race
}

func (f *fakeReviewsStorage) Get(_ context.Context, titleID, reviewID int64) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == reviewID && r.TitleID == titleID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeReviewsStorage) GetForTitle(_ context.Context, titleID int64, _ filters.Filters) ([]models.Review, int, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewsStorage) ExistsForAuthorTitle(_ context.Context, authorID, titleID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewsStorage) Insert(_ context.Context, titleID, authorID int64, text string, score int32) (*models.Review, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.nextID++
	review := &models.Review{ID: f.nextID, Text: text, AuthorID: authorID, TitleID: titleID, Score: score}
	f.reviews = append(f.reviews, review)
	copied := *review
	return &copied, nil
}

func (f *fakeReviewsStorage) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			copied := *review
			f.reviews[i] = &copied
			result := copied
			return &result, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeReviewsStorage) Delete(_ context.Context, titleID, reviewID int64) error {
	for i, r := range f.reviews {
		if r.ID == reviewID && r.TitleID == titleID {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeTitles struct {
	ids map[int64]bool
}

func (f *fakeTitles) Get(_ context.Context, id int64) (*models.Title, error) {
	if f.ids[id] {
		return &models.Title{ID: id}, nil
	}
	return nil, storage.ErrNotFound
}

func newTestService(reviewsStore *fakeReviewsStorage, titleIDs ...int64) *ReviewService {
	ids := map[int64]bool{}
	for _, id := range titleIDs {
		ids[id] = true
	}
	return New(slog.Default(), reviewsStore, &fakeTitles{ids: ids})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	author := &models.User{ID: 1, Username: "gordon", Role: models.RoleUser}

	t.Run("first review is created", func(t *testing.T) {
		store := &fakeReviewsStorage{}
		svc := newTestService(store, 10)
		review, err := svc.Create(ctx, 10, author, "solid", 8)
		require.NoError(t, err)
		assert.Equal(t, int32(8), review.Score)
		assert.Len(t, store.reviews, 1)
	})

	t.Run("second review by same author on same title rejected", func(t *testing.T) {
		store := &fakeReviewsStorage{}
		svc := newTestService(store, 10)
		_, err := svc.Create(ctx, 10, author, "solid", 8)
		require.NoError(t, err)
		_, err = svc.Create(ctx, 10, author, "changed my mind", 3)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		assert.Len(t, store.reviews, 1)
	})

	t.Run("same author may review a different title", func(t *testing.T) {
		store := &fakeReviewsStorage{}
		svc := newTestService(store, 10, 11)
		_, err := svc.Create(ctx, 10, author, "solid", 8)
		require.NoError(t, err)
		_, err = svc.Create(ctx, 11, author, "also good", 9)
		assert.NoError(t, err)
	})

	t.Run("constraint race surfaces as already reviewed", func(t *testing.T) {
		store := &fakeReviewsStorage{failWith: &storage.ConflictError{Constraint: "reviews_author_title_key"}}
		svc := newTestService(store, 10)
		_, err := svc.Create(ctx, 10, author, "solid", 8)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := newTestService(&fakeReviewsStorage{})
		_, err := svc.Create(ctx, 99, author, "solid", 8)
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	author := &models.User{ID: 1, Username: "gordon", Role: models.RoleUser}

	t.Run("updating own review skips the uniqueness guard", func(t *testing.T) {
		store := &fakeReviewsStorage{}
		svc := newTestService(store, 10)
		created, err := svc.Create(ctx, 10, author, "solid", 8)
		require.NoError(t, err)

		score := int32(9)
		updated, err := svc.Update(ctx, 10, created.ID, nil, &score)
		require.NoError(t, err)
		assert.Equal(t, int32(9), updated.Score)
		assert.Equal(t, "solid", updated.Text)
	})

	t.Run("missing review", func(t *testing.T) {
		svc := newTestService(&fakeReviewsStorage{}, 10)
		text := "ghost"
		_, err := svc.Update(ctx, 10, 42, &text, nil)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestListForTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("missing title", func(t *testing.T) {
		svc := newTestService(&fakeReviewsStorage{})
		_, _, err := svc.ListForTitle(ctx, 99, filters.New("id", "id"))
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})
}
