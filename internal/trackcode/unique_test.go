package trackcode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceGen(rolls ...int) *Generator {
	i := 0
	return NewGeneratorWith(fixedClock, func(int) int {
		r := rolls[i%len(rolls)]
		i++
		return r
	})
}

func TestMintRerollsUntilFree(t *testing.T) {
	taken := map[string]bool{"GEN-2025-1001": true, "GEN-2025-1002": true}
	var checked []string
	checker := Checker{Gen: sequenceGen(1, 2, 3), Scope: "candidates"}

	code, err := checker.Mint(context.Background(), func(ctx context.Context, code string) (bool, error) {
		checked = append(checked, code)
		return taken[code], nil
	})

	require.NoError(t, err)
	assert.Equal(t, "GEN-2025-1003", code)
	assert.Equal(t, []string{"GEN-2025-1001", "GEN-2025-1002", "GEN-2025-1003"}, checked)
}

func TestMintStopsAtCap(t *testing.T) {
	calls := 0
	checker := Checker{Gen: sequenceGen(7), MaxAttempts: 4, Scope: "tracking"}

	_, err := checker.Mint(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	})

	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, 4, calls)
}

func TestMintPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	checker := Checker{Gen: sequenceGen(1)}

	_, err := checker.Mint(context.Background(), func(ctx context.Context, code string) (bool, error) {
		return false, storeErr
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestMintHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	checker := Checker{Gen: sequenceGen(1), MaxAttempts: 100}

	_, err := checker.Mint(ctx, func(ctx context.Context, code string) (bool, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return true, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestMintRequiresExistsFunc(t *testing.T) {
	_, err := Checker{}.Mint(context.Background(), nil)
	require.Error(t, err)
}
