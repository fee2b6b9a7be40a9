// Package sim реализует границу выполнения: интерфейс исполнителя схем
// и локальный бесшумный симулятор на векторе состояния. Ядро построения
// схем ничего не знает о жизненном цикле выполнения — оно передает сюда
// готовое описание и получает обратно гистограмму результатов.
package sim

import (
	"context"
	"sort"

	"github.com/fillay12321/qsearch/quantum"
)

// Counts отображает измеренную строку битов (в том же little-endian
// порядке, что и целевая строка) в число наблюдений. Сумма значений
// равна запрошенному числу запусков.
type Counts map[string]uint64

// Total возвращает суммарное число наблюдений.
func (c Counts) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// Top возвращает самый частый результат и его счетчик. При равных
// счетчиках выбирается лексикографически меньшая строка, чтобы результат
// был детерминированным.
func (c Counts) Top() (string, uint64) {
	var best string
	var bestCount uint64
	for outcome, n := range c {
		if n > bestCount || (n == bestCount && (best == "" || outcome < best)) {
			best, bestCount = outcome, n
		}
	}
	return best, bestCount
}

// Sorted возвращает результаты, отсортированные по убыванию счетчика,
// при равенстве — по строке.
func (c Counts) Sorted() []string {
	keys := make([]string, 0, len(c))
	for outcome := range c {
		keys = append(keys, outcome)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c[keys[i]] != c[keys[j]] {
			return c[keys[i]] > c[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Executor — единственная граница между построением схемы и ее
// выполнением: принимает неизменяемое описание схемы и число запусков,
// возвращает гистограмму измеренных строк. Реализация может быть
// локальным симулятором или адаптером удаленного оборудования;
// повторные попытки и очереди — забота реализации, не ядра.
type Executor interface {
	Run(ctx context.Context, circ *quantum.Circuit, shots uint64) (Counts, error)
}
