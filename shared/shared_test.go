package shared_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room", shared.BuildCacheKey("room"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room", "gets"))
	assert.Equal(t, "availability:booked-dates:deluxe", shared.BuildCacheKey("availability", "booked-dates", "deluxe"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: dto.SortDirDesc}

	assert.Equal(t, "booking:gets:page=2:limit=20:sort=start_date:DESC", shared.BuildCacheKeyWithQuery("booking", params, "gets"))
	assert.Equal(t, "booking:page=0:limit=0:sort=:", shared.BuildCacheKeyWithQuery("booking", dto.QueryParams{}))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		redisCache.EXPECT().Clear(ctx, "booking:*").Return(errors.New("connection refused")),
		redisCache.EXPECT().Clear(ctx, "availability:*").Return(nil),
	)

	shared.InvalidateCaches(ctx, redisCache, "booking:*", "availability:*")
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
	}{
		{name: "two thirds", value: 66.666666, decimals: 2, want: 66.67},
		{name: "already round", value: 50, decimals: 2, want: 50},
		{name: "below half", value: 12.345, decimals: 1, want: 12.3},
		{name: "zero decimals", value: 2.5, decimals: 0, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, shared.Round(tt.value, tt.decimals), 1e-9)
		})
	}
}

func TestFilterBy(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestGeneration(t *testing.T) {
	tests := []struct {
		name  string
		token string
		err   error
		want  string
	}{
		{name: "issued token", token: "5d1c", want: "5d1c"},
		{name: "never rotated", err: cache.Nil, want: constant.CacheGenerationInitial},
		{name: "redis down", err: errors.New("connection refused"), want: constant.CacheGenerationInitial},
		{name: "empty token", want: constant.CacheGenerationInitial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := mocks.NewMockRedisCache(ctrl)

			redisCache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					*(value.(*string)) = tt.token

					return tt.err
				})

			assert.Equal(t, tt.want, shared.Generation(context.Background(), redisCache, constant.CacheKeyAvailabilityGeneration))
		})
	}
}

func TestRotateGeneration_IssuesFreshTokenWithoutExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	var tokens []string

	redisCache.EXPECT().Save(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any(), 0).
		DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
			tokens = append(tokens, value.(string))

			return nil
		}).Times(2)

	shared.RotateGeneration(context.Background(), redisCache, constant.CacheKeyAvailabilityGeneration)
	shared.RotateGeneration(context.Background(), redisCache, constant.CacheKeyAvailabilityGeneration)

	assert.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1])
	assert.NotContains(t, tokens, constant.CacheGenerationInitial)
}

func TestGenerationKeySurvivesAvailabilityClear(t *testing.T) {
	assert.NotRegexp(t, "^"+constant.CachePrefixAvailability+":", constant.CacheKeyAvailabilityGeneration)
}
