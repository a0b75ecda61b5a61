package service_test

import (
	"testing"

	"github.com/SergeiKhy/post-stats/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLikePolicy_Increment проверяет правила допуска лайков (потолок 3)
func TestLikePolicy_Increment(t *testing.T) {
	policy := service.NewLikePolicy(3)

	tests := []struct {
		name      string
		current   int64
		requested int64
		want      int64
		wantErr   error
	}{
		{name: "первый лайк", current: 0, requested: 1, want: 1},
		{name: "сразу до потолка", current: 0, requested: 3, want: 3},
		{name: "второй лайк", current: 1, requested: 1, want: 2},
		{name: "урезание до остатка", current: 2, requested: 3, want: 1},
		{name: "потолок достигнут", current: 3, requested: 1, wantErr: service.ErrMaxLikesReached},
		{name: "выше потолка в состоянии", current: 5, requested: 1, wantErr: service.ErrMaxLikesReached},
		{name: "ноль", current: 0, requested: 0, wantErr: service.ErrInvalidCount},
		{name: "отрицательное", current: 0, requested: -1, wantErr: service.ErrInvalidCount},
		{name: "больше лимита запроса", current: 0, requested: 4, wantErr: service.ErrInvalidCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Increment(tt.current, tt.requested)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLikePolicy_CapValidatesRequestToo проверяет, что верхняя граница запроса
// равна потолку и не зависит от накопленного состояния
func TestLikePolicy_CapValidatesRequestToo(t *testing.T) {
	policy := service.NewLikePolicy(5)

	// count=5 валиден при потолке 5
	inc, err := policy.Increment(0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), inc)

	// count=6 невалиден даже при полностью свободном остатке
	_, err = policy.Increment(0, 6)
	assert.ErrorIs(t, err, service.ErrInvalidCount)
}
