package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

const categoryCacheKey = "cache:categories:all"

type CategoryService interface {
	List(ctx context.Context, search string, p dto.PageParams) (*dto.Page[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewCategoryService(repo repository.CategoryRepository, cache *redis.Client, cacheTTL time.Duration) CategoryService {
	return &categoryService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// List serves the unfiltered listing from the cache when possible; the table
// is small and mutations are rare. Searches always hit the database.
func (s *categoryService) List(ctx context.Context, search string, p dto.PageParams) (*dto.Page[dto.CategoryResponse], error) {
	if search != "" {
		categories, total, err := s.repo.List(ctx, search, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
		return categoryPage(categories, total), nil
	}

	all, ok := s.cachedAll(ctx)
	if !ok {
		var err error
		all, err = s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		s.storeAll(ctx, all)
	}

	page := pageSlice(all, p)
	return categoryPage(page, int64(len(all))), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validation.Slug(req.Slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Cache failures degrade to the database silently.

func (s *categoryService) cachedAll(ctx context.Context) ([]models.Category, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var all []models.Category
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, false
	}
	return all, true
}

func (s *categoryService) storeAll(ctx context.Context, all []models.Category) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return
	}
	s.cache.Set(ctx, categoryCacheKey, raw, s.cacheTTL)
}

func (s *categoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, categoryCacheKey)
}

func categoryPage(categories []models.Category, total int64) *dto.Page[dto.CategoryResponse] {
	results := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		results = append(results, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPage(results, total)
}

// pageSlice applies limit/offset to an in-memory listing.
func pageSlice[T any](items []T, p dto.PageParams) []T {
	if p.Offset >= len(items) {
		return nil
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
