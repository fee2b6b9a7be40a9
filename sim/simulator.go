package sim

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/fillay12321/qsearch/quantum"
)

const (
	// MaxShards максимальное число параллельных шардов сэмплирования
	MaxShards = 64

	// MinShotsPerShard минимальный размер шарда, при котором есть смысл параллелить
	MinShotsPerShard = 256
)

var (
	// ErrNilCircuit ошибка, возникающая при передаче пустой схемы
	ErrNilCircuit = errors.New("схема не задана")

	// ErrNoShots ошибка, возникающая при нулевом числе запусков
	ErrNoShots = errors.New("число запусков должно быть положительным")

	// ErrNoMeasurements ошибка, возникающая когда в схеме нет ни одного измерения
	ErrNoMeasurements = errors.New("схема не содержит измерений")
)

// Simulator — локальный бесшумный исполнитель: идеализированная замена
// удаленного квантового оборудования. Схема разворачивается в примитивные
// инструкции, вектор состояния эволюционирует один раз, после чего
// запрошенное число запусков сэмплируется из итогового распределения
// параллельными шардами.
type Simulator struct {
	// Shards задает число шардов сэмплирования; 0 означает
	// число логических ядер (не более MaxShards).
	Shards int

	// Seed задает зерно генератора для воспроизводимых результатов;
	// 0 означает зерно от текущего времени.
	Seed int64
}

// NewSimulator создает симулятор с настройками по умолчанию.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Run выполняет схему указанное число раз и возвращает гистограмму
// измеренных строк. Контекст прерывает сэмплирование между шардами.
func (sim *Simulator) Run(ctx context.Context, circ *quantum.Circuit, shots uint64) (Counts, error) {
	if circ == nil {
		return nil, ErrNilCircuit
	}
	if shots == 0 {
		return nil, ErrNoShots
	}

	jobID := uuid.New().String()
	start := time.Now()
	log.Debug("запуск локальной симуляции",
		"job", jobID,
		"qubits", circ.NumQubits(),
		"shots", shots,
	)

	state, err := NewStateVector(circ.NumQubits())
	if err != nil {
		return nil, err
	}

	// Соответствие кубит -> классический бит из инструкций измерения.
	measured := make(map[int]int)
	for _, in := range circ.Flatten() {
		if in.Gate == quantum.GateMeasure {
			measured[in.Qubits[0]] = in.Clbit
			continue
		}
		if err := state.Apply(in); err != nil {
			return nil, err
		}
	}
	if len(measured) == 0 {
		return nil, ErrNoMeasurements
	}

	basisCounts, err := sim.sample(ctx, state.Probabilities(), shots)
	if err != nil {
		return nil, err
	}

	counts := make(Counts, len(basisCounts))
	for basis, n := range basisCounts {
		var readout uint64
		for qubit, clbit := range measured {
			if (basis>>qubit)&1 == 1 {
				readout |= 1 << clbit
			}
		}
		counts[quantum.FormatOutcome(readout, circ.NumClbits())] += n
	}

	log.Debug("симуляция завершена",
		"job", jobID,
		"outcomes", len(counts),
		"elapsed", time.Since(start),
	)
	return counts, nil
}

// sample сэмплирует shots базисных состояний из распределения probs.
// Запуски делятся на шарды, каждый шард работает со своим генератором,
// число одновременных шардов ограничено семафором.
func (sim *Simulator) sample(ctx context.Context, probs []float64, shots uint64) (map[uint64]uint64, error) {
	cum := make([]float64, len(probs))
	total := 0.0
	for i, p := range probs {
		total += p
		cum[i] = total
	}
	// Защита от накопленной ошибки округления на последнем интервале.
	cum[len(cum)-1] = 1.0

	shards := sim.Shards
	if shards <= 0 {
		shards = runtime.NumCPU()
	}
	if shards > MaxShards {
		shards = MaxShards
	}
	for shards > 1 && shots/uint64(shards) < MinShotsPerShard {
		shards--
	}

	seed := sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		mutex  sync.Mutex
		merged = make(map[uint64]uint64)
	)
	sem := semaphore.NewWeighted(int64(shards))
	perShard := shots / uint64(shards)
	remainder := shots % uint64(shards)

	for shard := 0; shard < shards; shard++ {
		n := perShard
		if uint64(shard) < remainder {
			n++
		}
		if n == 0 {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(shardID int, n uint64) {
			defer sem.Release(1)

			rng := rand.New(rand.NewSource(seed + int64(shardID)))
			local := make(map[uint64]uint64)
			for i := uint64(0); i < n; i++ {
				r := rng.Float64()
				idx := sort.SearchFloat64s(cum, r)
				if idx >= len(cum) {
					idx = len(cum) - 1
				}
				local[uint64(idx)]++
			}

			mutex.Lock()
			for basis, c := range local {
				merged[basis] += c
			}
			mutex.Unlock()
		}(shard, n)
	}

	// Дожидаемся всех шардов, забирая весь вес семафора.
	if err := sem.Acquire(ctx, int64(shards)); err != nil {
		return nil, err
	}
	return merged, nil
}
