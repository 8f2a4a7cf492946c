package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins prefix and parts with ":", e.g. "room:gets".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery appends the paging and sorting of params to the key.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, parts ...string) string {
	key := BuildCacheKey(prefix, parts...)

	return fmt.Sprintf("%s:page=%d:limit=%d:sort=%s:%s", key, params.Page, params.Limit, params.SortBy, params.SortDir)
}

// InvalidateCaches clears every pattern. Failures are logged, a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, patterns ...string) {
	for _, pattern := range patterns {
		if err := redisCache.Clear(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
		}
	}
}

// Generation returns the token stored under key, or CacheGenerationInitial when none was issued.
// Readers put the token into their cache keys.
func Generation(ctx context.Context, redisCache cache.RedisCache, key string) string {
	var token string

	if err := redisCache.Get(ctx, key, &token); err != nil {
		if !cache.IsMiss(err) {
			log.Warn().Err(err).Str("key", key).Msg("failed to read cache generation")
		}

		return constant.CacheGenerationInitial
	}

	if token == constant.Empty {
		return constant.CacheGenerationInitial
	}

	return token
}

// RotateGeneration stores a fresh token under key without expiry. Entries saved under an older
// token, including ones written by reads still in flight, are never looked up again.
func RotateGeneration(ctx context.Context, redisCache cache.RedisCache, key string) {
	if err := redisCache.Save(ctx, key, uuid.NewString(), 0); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to rotate cache generation")
	}
}

// Round rounds value half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))

	return math.Round(value*factor) / factor
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterBy(fieldID, id, table)
}

func FilterBy(field string, value any, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
		Operator: dto.FilterGroupOperatorAnd,
	}
}
