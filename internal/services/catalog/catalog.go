// Package catalog manages the two slug-keyed reference collections,
// categories and genres.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type CategoriesStorage interface {
	List(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error)
	Insert(ctx context.Context, name, slug string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type GenresStorage interface {
	List(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error)
	Insert(ctx context.Context, name, slug string) (*models.Genre, error)
	ListBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type CatalogService struct {
	log        *slog.Logger
	categories CategoriesStorage
	genres     GenresStorage
}

func New(log *slog.Logger, categories CategoriesStorage, genres GenresStorage) *CatalogService {
	return &CatalogService{log: log, categories: categories, genres: genres}
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	return s.categories.List(ctx, search, f)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	const op = "catalog.CatalogService.CreateCategory"
	category, err := s.categories.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrSlugTaken
		}
		s.log.With("op", op, "slug", slug).Error(err.Error())
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory detaches, not destroys: dependent titles keep existing
// with a null category (FK is ON DELETE SET NULL).
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	const op = "catalog.CatalogService.DeleteCategory"
	if err := s.categories.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		s.log.With("op", op, "slug", slug).Error(err.Error())
		return err
	}
	return nil
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	return s.genres.List(ctx, search, f)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*models.Genre, error) {
	const op = "catalog.CatalogService.CreateGenre"
	genre, err := s.genres.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrSlugTaken
		}
		s.log.With("op", op, "slug", slug).Error(err.Error())
		return nil, err
	}
	return genre, nil
}

// GenresBySlugs resolves all slugs or reports ErrGenreNotFound if any is
// unknown.
func (s *CatalogService) GenresBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genres.ListBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	const op = "catalog.CatalogService.DeleteGenre"
	if err := s.genres.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGenreNotFound
		}
		s.log.With("op", op, "slug", slug).Error(err.Error())
		return err
	}
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
