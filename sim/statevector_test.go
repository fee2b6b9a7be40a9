package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fillay12321/qsearch/quantum"
)

func TestNewStateVector(t *testing.T) {
	_, err := NewStateVector(0)
	assert.ErrorIs(t, err, quantum.ErrInvalidQubitCount)

	_, err = NewStateVector(MaxQubits + 1)
	assert.ErrorIs(t, err, ErrTooManyQubits)

	state, err := NewStateVector(2)
	require.NoError(t, err)
	amps := state.Amplitudes()
	require.Len(t, amps, 4)
	assert.Equal(t, complex(1, 0), amps[0])
}

func TestApplyHadamard(t *testing.T) {
	state, err := NewStateVector(1)
	require.NoError(t, err)
	require.NoError(t, state.ApplyHadamard(0))

	amps := state.Amplitudes()
	assert.InDelta(t, 1/math.Sqrt2, real(amps[0]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, real(amps[1]), 1e-12)

	// Повторный Адамар возвращает |0⟩.
	require.NoError(t, state.ApplyHadamard(0))
	amps = state.Amplitudes()
	assert.InDelta(t, 1, real(amps[0]), 1e-12)
	assert.InDelta(t, 0, real(amps[1]), 1e-12)

	assert.ErrorIs(t, state.ApplyHadamard(1), ErrQubitOutOfRange)
}

func TestApplyPauliX(t *testing.T) {
	state, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, state.ApplyPauliX(1))

	amps := state.Amplitudes()
	assert.Equal(t, complex(0, 0), amps[0])
	assert.Equal(t, complex(1, 0), amps[2]) // |10⟩
}

func TestApplyMCX(t *testing.T) {
	t.Run("Управление активировано", func(t *testing.T) {
		state, err := NewStateVector(2)
		require.NoError(t, err)
		require.NoError(t, state.ApplyPauliX(0)) // |01⟩
		require.NoError(t, state.ApplyMCX([]int{0}, 1))

		amps := state.Amplitudes()
		assert.Equal(t, complex(1, 0), amps[3]) // |11⟩
	})

	t.Run("Управление не активировано", func(t *testing.T) {
		state, err := NewStateVector(2)
		require.NoError(t, err)
		require.NoError(t, state.ApplyMCX([]int{0}, 1))

		amps := state.Amplitudes()
		assert.Equal(t, complex(1, 0), amps[0]) // состояние не изменилось
	})

	t.Run("Ноль управляющих кубитов", func(t *testing.T) {
		state, err := NewStateVector(1)
		require.NoError(t, err)
		require.NoError(t, state.ApplyMCX(nil, 0))

		amps := state.Amplitudes()
		assert.Equal(t, complex(1, 0), amps[1]) // обычный X
	})

	t.Run("Совпадение управления и цели", func(t *testing.T) {
		state, err := NewStateVector(2)
		require.NoError(t, err)
		assert.ErrorIs(t, state.ApplyMCX([]int{1}, 1), quantum.ErrDuplicateQubits)
	})
}

func TestApplyInstruction(t *testing.T) {
	state, err := NewStateVector(1)
	require.NoError(t, err)

	err = state.Apply(quantum.Instruction{Gate: quantum.GateMeasure, Qubits: []int{0}, Clbit: 0})
	assert.ErrorIs(t, err, ErrUnsupportedGate)
}

func TestProbabilitiesNormalized(t *testing.T) {
	state, err := NewStateVector(3)
	require.NoError(t, err)
	for q := 0; q < 3; q++ {
		require.NoError(t, state.ApplyHadamard(q))
	}
	require.NoError(t, state.ApplyMCX([]int{0, 1}, 2))

	total := 0.0
	for _, p := range state.Probabilities() {
		total += p
	}
	assert.InDelta(t, 1, total, 1e-12)
}
