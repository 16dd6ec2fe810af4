package titles

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/storage"
	storagemodels "reviewhub/proj/internal/storage/postgres/models"
)

type TitlesStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter storagemodels.TitleListFilter, f filters.Filters) ([]models.Title, int, error)
	Insert(ctx context.Context, name string, year int32, description string, categoryID *int64, genreIDs []int64) (int64, error)
	Update(ctx context.Context, title *models.Title, genreIDs []int64, replaceGenres bool) error
	Delete(ctx context.Context, id int64) error
}

// CatalogProvider resolves category and genre slugs for title writes.
type CatalogProvider interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GenresBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
}

type TitleService struct {
	log     *slog.Logger
	storage TitlesStorage
	catalog CatalogProvider
}

func New(log *slog.Logger, storage TitlesStorage, catalogProvider CatalogProvider) *TitleService {
	return &TitleService{log: log, storage: storage, catalog: catalogProvider}
}

type CreateParams struct {
	Name        string
	Year        int32
	Description string
	Category    string
	Genres      []string
}

// UpdateParams carries a partial update; nil means "leave as is".
type UpdateParams struct {
	Name        *string
	Year        *int32
	Description *string
	Category    *string
	Genres      []string
}

func (s *TitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	const op = "titles.TitleService.Get"
	title, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return title, nil
}

func (s *TitleService) List(ctx context.Context, filter storagemodels.TitleListFilter, f filters.Filters) ([]models.Title, int, error) {
	const op = "titles.TitleService.List"
	titles, count, err := s.storage.List(ctx, filter, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return titles, count, nil
}

func (s *TitleService) resolveRefs(ctx context.Context, categorySlug string, genreSlugs []string) (*int64, []int64, error) {
	var categoryID *int64
	if categorySlug != "" {
		category, err := s.catalog.CategoryBySlug(ctx, categorySlug)
		if err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				return nil, nil, ErrUnknownCategory
			}
			return nil, nil, err
		}
		categoryID = &category.ID
	}
	var genreIDs []int64
	if len(genreSlugs) > 0 {
		genres, err := s.catalog.GenresBySlugs(ctx, genreSlugs)
		if err != nil {
			if errors.Is(err, catalog.ErrGenreNotFound) {
				return nil, nil, ErrUnknownGenre
			}
			return nil, nil, err
		}
		genreIDs = make([]int64, 0, len(genres))
		for _, g := range genres {
			genreIDs = append(genreIDs, g.ID)
		}
	}
	return categoryID, genreIDs, nil
}

func (s *TitleService) Create(ctx context.Context, params CreateParams) (*models.Title, error) {
	const op = "titles.TitleService.Create"
	log := s.log.With("op", op, "name", params.Name)
	categoryID, genreIDs, err := s.resolveRefs(ctx, params.Category, params.Genres)
	if err != nil {
		return nil, err
	}
	id, err := s.storage.Insert(ctx, params.Name, params.Year, params.Description, categoryID, genreIDs)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TitleService) Update(ctx context.Context, id int64, params UpdateParams) (*models.Title, error) {
	const op = "titles.TitleService.Update"
	log := s.log.With("op", op, "id", id)
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		title.Name = *params.Name
	}
	if params.Year != nil {
		title.Year = *params.Year
	}
	if params.Description != nil {
		title.Description = *params.Description
	}
	if params.Category != nil {
		category, err := s.catalog.CategoryBySlug(ctx, *params.Category)
		if err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		title.Category = category
	}
	var genreIDs []int64
	replaceGenres := params.Genres != nil
	if replaceGenres {
		_, genreIDs, err = s.resolveRefs(ctx, "", params.Genres)
		if err != nil {
			return nil, err
		}
	}
	if err := s.storage.Update(ctx, title, genreIDs, replaceGenres); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the title along with its reviews and their comments.
func (s *TitleService) Delete(ctx context.Context, id int64) error {
	const op = "titles.TitleService.Delete"
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return err
	}
	return nil
}
