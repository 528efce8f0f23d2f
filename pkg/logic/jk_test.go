package logic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
)

var defined = []domain.Bit{domain.Zero, domain.One}

func TestJK_Table(t *testing.T) {
	tests := []struct {
		name    string
		q, j, k domain.Bit
		want    domain.Bit
	}{
		{"hold 0", domain.Zero, domain.Zero, domain.Zero, domain.Zero},
		{"hold 1", domain.One, domain.Zero, domain.Zero, domain.One},
		{"reset from 1", domain.One, domain.Zero, domain.One, domain.Zero},
		{"reset from 0", domain.Zero, domain.Zero, domain.One, domain.Zero},
		{"set from 0", domain.Zero, domain.One, domain.Zero, domain.One},
		{"set from 1", domain.One, domain.One, domain.Zero, domain.One},
		{"toggle 0", domain.Zero, domain.One, domain.One, domain.One},
		{"toggle 1", domain.One, domain.One, domain.One, domain.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logic.JK(tt.q, tt.j, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJK_HoldIsIdempotent(t *testing.T) {
	for _, q := range defined {
		got, err := logic.JK(q, domain.Zero, domain.Zero)
		require.NoError(t, err)
		assert.Equal(t, q, got)

		again, err := logic.JK(got, domain.Zero, domain.Zero)
		require.NoError(t, err)
		assert.Equal(t, q, again)
	}
}

func TestJK_ToggleIsInvolution(t *testing.T) {
	for _, q := range defined {
		once, err := logic.JK(q, domain.One, domain.One)
		require.NoError(t, err)
		assert.Equal(t, q.Not(), once)

		twice, err := logic.JK(once, domain.One, domain.One)
		require.NoError(t, err)
		assert.Equal(t, q, twice)
	}
}

func TestJK_RejectsUndefinedBits(t *testing.T) {
	_, err := logic.JK(domain.Unknown, domain.One, domain.One)
	assert.ErrorIs(t, err, domain.ErrInvalidBit)

	var bitErr *domain.BitError
	_, err = logic.JK(domain.Zero, domain.Zero, domain.Bit(7))
	require.ErrorAs(t, err, &bitErr)
	assert.Equal(t, 2, bitErr.Position)
}

func TestCharacteristic_AgreesWithTable(t *testing.T) {
	for _, q := range defined {
		for _, j := range defined {
			for _, k := range defined {
				want, err := logic.JK(q, j, k)
				require.NoError(t, err)
				assert.Equal(t, want, logic.Characteristic(q, j, k), "q=%s j=%s k=%s", q, j, k)
			}
		}
	}
}
