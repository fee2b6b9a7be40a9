package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fillay12321/qsearch/grover"
	"github.com/fillay12321/qsearch/quantum"
	"github.com/fillay12321/qsearch/sim"
)

func buildSearchCircuit(t *testing.T, n int, target string, iterations int) *quantum.Circuit {
	t.Helper()
	s, err := grover.NewSearch(n, target)
	require.NoError(t, err)
	circ, err := s.BuildCircuit(iterations)
	require.NoError(t, err)
	return circ
}

func TestSimulatorGroverSearch(t *testing.T) {
	// Сквозной сценарий: n=3, цель "101", две итерации усиления.
	// Теоретическая вероятность цели sin²(5θ) ≈ 0.945.
	circ := buildSearchCircuit(t, 3, "101", 2)

	executor := &sim.Simulator{Seed: 1}
	const shots = 10000
	counts, err := executor.Run(context.Background(), circ, shots)
	require.NoError(t, err)

	assert.Equal(t, uint64(shots), counts.Total())

	top, n := counts.Top()
	assert.Equal(t, "101", top)
	assert.Greater(t, float64(n)/float64(shots), 0.5,
		"целевое состояние должно набрать больше половины запусков")
}

func TestSimulatorCertainOutcome(t *testing.T) {
	// n=2, одна итерация: вероятность цели ровно sin²(3·π/6) = 1.
	circ := buildSearchCircuit(t, 2, "11", 1)

	executor := &sim.Simulator{Seed: 7}
	counts, err := executor.Run(context.Background(), circ, 4096)
	require.NoError(t, err)

	assert.Equal(t, uint64(4096), counts["11"])
	assert.Len(t, counts, 1)
}

func TestSimulatorUniformSplit(t *testing.T) {
	// Один кубит без усиления: инициализация и измерение дают ~50/50.
	circ := buildSearchCircuit(t, 1, "0", 0)

	executor := &sim.Simulator{Seed: 42}
	const shots = 10000
	counts, err := executor.Run(context.Background(), circ, shots)
	require.NoError(t, err)

	assert.Equal(t, uint64(shots), counts.Total())
	for _, outcome := range []string{"0", "1"} {
		share := float64(counts[outcome]) / float64(shots)
		assert.InDelta(t, 0.5, share, 0.05, "доля %q", outcome)
	}
}

func TestSimulatorDeterministicSeed(t *testing.T) {
	circ := buildSearchCircuit(t, 3, "011", 2)
	executor := &sim.Simulator{Seed: 99, Shards: 4}

	first, err := executor.Run(context.Background(), circ, 5000)
	require.NoError(t, err)
	second, err := executor.Run(context.Background(), circ, 5000)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulatorErrors(t *testing.T) {
	circ := buildSearchCircuit(t, 2, "10", 1)
	executor := sim.NewSimulator()

	t.Run("Пустая схема", func(t *testing.T) {
		_, err := executor.Run(context.Background(), nil, 100)
		assert.ErrorIs(t, err, sim.ErrNilCircuit)
	})

	t.Run("Ноль запусков", func(t *testing.T) {
		_, err := executor.Run(context.Background(), circ, 0)
		assert.ErrorIs(t, err, sim.ErrNoShots)
	})

	t.Run("Схема без измерений", func(t *testing.T) {
		bare, err := quantum.NewCircuit(1, 1)
		require.NoError(t, err)
		require.NoError(t, bare.H(0))
		_, err = executor.Run(context.Background(), bare, 100)
		assert.ErrorIs(t, err, sim.ErrNoMeasurements)
	})

	t.Run("Отмененный контекст", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := executor.Run(ctx, circ, 100000)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCounts(t *testing.T) {
	counts := sim.Counts{"00": 10, "01": 70, "10": 15, "11": 5}

	assert.Equal(t, uint64(100), counts.Total())

	top, n := counts.Top()
	assert.Equal(t, "01", top)
	assert.Equal(t, uint64(70), n)

	assert.Equal(t, []string{"01", "10", "00", "11"}, counts.Sorted())

	t.Run("Равные счетчики", func(t *testing.T) {
		tied := sim.Counts{"10": 5, "01": 5}
		top, _ := tied.Top()
		assert.Equal(t, "01", top)
	})
}
