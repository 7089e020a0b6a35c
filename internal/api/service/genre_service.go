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

const genreCacheKey = "cache:genres:all"

type GenreService interface {
	List(ctx context.Context, search string, p dto.PageParams) (*dto.Page[dto.GenreResponse], error)
	Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo     repository.GenreRepository
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewGenreService(repo repository.GenreRepository, cache *redis.Client, cacheTTL time.Duration) GenreService {
	return &genreService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *genreService) List(ctx context.Context, search string, p dto.PageParams) (*dto.Page[dto.GenreResponse], error) {
	if search != "" {
		genres, total, err := s.repo.List(ctx, search, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
		return genrePage(genres, total), nil
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
	return genrePage(page, int64(len(all))), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	if err := validation.Slug(req.Slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *genreService) cachedAll(ctx context.Context) ([]models.Genre, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, genreCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var all []models.Genre
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, false
	}
	return all, true
}

func (s *genreService) storeAll(ctx context.Context, all []models.Genre) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return
	}
	s.cache.Set(ctx, genreCacheKey, raw, s.cacheTTL)
}

func (s *genreService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, genreCacheKey)
}

func genrePage(genres []models.Genre, total int64) *dto.Page[dto.GenreResponse] {
	results := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		results = append(results, *dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPage(results, total)
}
