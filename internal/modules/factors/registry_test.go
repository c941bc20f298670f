package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpool/advisor/internal/market"
)

func TestNewRegistry_RegistersDefaultFactorSet(t *testing.T) {
	registry := NewRegistry()

	expected := []string{
		"price_momentum", "rsi_14", "ma_trend",
		"volume_surge", "turnover_surge",
		"price_percentile", "earnings_yield",
		"return_stability", "roe",
	}

	all := registry.All()
	require.Len(t, all, len(expected))
	for i, name := range expected {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestRegistry_Register_Validation(t *testing.T) {
	compute := func(series []market.Observation) *float64 { return nil }

	tests := []struct {
		name    string
		factor  Factor
		wantErr string
	}{
		{
			name:    "missing name",
			factor:  Factor{Group: GroupMomentum, Lookback: 1, Compute: compute},
			wantErr: "name is required",
		},
		{
			name:    "missing compute",
			factor:  Factor{Name: "x", Group: GroupMomentum, Lookback: 1},
			wantErr: "no compute function",
		},
		{
			name:    "invalid lookback",
			factor:  Factor{Name: "x", Group: GroupMomentum, Lookback: 0, Compute: compute},
			wantErr: "invalid lookback",
		},
		{
			name:    "duplicate name",
			factor:  Factor{Name: "rsi_14", Group: GroupMomentum, Lookback: 1, Compute: compute},
			wantErr: "already registered",
		},
	}

	registry := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.factor)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_Get_UnknownFactor(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("no_such_factor")
	assert.Error(t, err)
}

func TestFactor_Value_EnforcesLookback(t *testing.T) {
	called := false
	f := Factor{
		Name:     "needs_five",
		Group:    GroupMomentum,
		Lookback: 5,
		Compute: func(series []market.Observation) *float64 {
			called = true
			v := 1.0
			return &v
		},
	}

	short := make([]market.Observation, 4)
	assert.Nil(t, f.Value(short))
	assert.False(t, called)

	long := make([]market.Observation, 5)
	assert.NotNil(t, f.Value(long))
	assert.True(t, called)
}
