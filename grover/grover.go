// Package grover строит схему квантового поиска Гровера: фазовый оракул,
// отмечающий целевое базисное состояние, оператор диффузии (отражение
// относительно среднего) и полную схему с инициализацией и измерением.
// Пакет только описывает схему; выполнение делегируется исполнителю.
package grover

import (
	"github.com/fillay12321/qsearch/quantum"
)

// Имена составных операторов в диаграммах схемы.
const (
	OracleName   = "Oracle (Z_f)"
	DiffuserName = "Diffuser (D)"
)

// Search описывает задачу поиска: регистр из n кубитов и целевая строка w.
// Значение неизменяемо после создания.
type Search struct {
	numQubits int
	target    string
}

// NewSearch создает задачу поиска, проверяя согласованность параметров:
// n ≥ 1, длина целевой строки равна n, алфавит — {'0','1'}.
// Проверка выполняется здесь, до какого-либо построения схемы.
func NewSearch(numQubits int, target string) (*Search, error) {
	if numQubits <= 0 {
		return nil, ErrInvalidQubitCount
	}
	if err := quantum.ValidateTarget(target, numQubits); err != nil {
		return nil, err
	}
	return &Search{numQubits: numQubits, target: target}, nil
}

// NumQubits возвращает размер регистра.
func (s *Search) NumQubits() int {
	return s.numQubits
}

// Target возвращает целевую строку.
func (s *Search) Target() string {
	return s.target
}

// mcz добавляет к схеме многоуправляемый Z, ограниченный шаблоном
// "все единицы": H на последней линии, многоуправляемый X с управлением
// на всех остальных линиях, снова H. Разложение работает на любом
// исполнителе, у которого есть Адамар и многоуправляемый X — нативный
// многоуправляемый Z есть не везде. При n == 1 список управляющих
// кубитов пуст и сэндвич вырождается в H·X·H ≡ Z.
func (s *Search) mcz(qc *quantum.Circuit) error {
	last := s.numQubits - 1
	controls := make([]int, 0, last)
	for q := 0; q < last; q++ {
		controls = append(controls, q)
	}
	if err := qc.H(last); err != nil {
		return err
	}
	if err := qc.MCX(controls, last); err != nil {
		return err
	}
	return qc.H(last)
}

// Oracle строит фазовый оракул Z_f: оператор, умножающий амплитуду
// целевого базисного состояния на −1 и не затрагивающий остальные.
//
// Линии, на которых целевой бит равен '0', оборачиваются вентилями X,
// чтобы шаблон "все единицы" совпал с целевым; затем применяется
// многоуправляемый Z через сэндвич H/MCX/H; затем X повторяются,
// возвращая базис и оставляя только инвертированную фазу цели.
func (s *Search) Oracle() (*quantum.Operator, error) {
	qc, err := quantum.NewCircuit(s.numQubits, 0)
	if err != nil {
		return nil, err
	}
	for q := 0; q < s.numQubits; q++ {
		if quantum.TargetBit(s.target, q) == '0' {
			if err := qc.X(q); err != nil {
				return nil, err
			}
		}
	}
	if err := s.mcz(qc); err != nil {
		return nil, err
	}
	for q := 0; q < s.numQubits; q++ {
		if quantum.TargetBit(s.target, q) == '0' {
			if err := qc.X(q); err != nil {
				return nil, err
			}
		}
	}
	return qc.ToOperator(OracleName)
}

// Diffuser строит оператор диффузии D = 2|u⟩⟨u| − I, отражающий амплитуду
// каждого базисного состояния относительно среднего: H на всех линиях,
// X на всех линиях, многоуправляемый Z через сэндвич H/MCX/H, затем
// X и H в обратном порядке.
func (s *Search) Diffuser() (*quantum.Operator, error) {
	qc, err := quantum.NewCircuit(s.numQubits, 0)
	if err != nil {
		return nil, err
	}
	for q := 0; q < s.numQubits; q++ {
		if err := qc.H(q); err != nil {
			return nil, err
		}
	}
	for q := 0; q < s.numQubits; q++ {
		if err := qc.X(q); err != nil {
			return nil, err
		}
	}
	if err := s.mcz(qc); err != nil {
		return nil, err
	}
	for q := 0; q < s.numQubits; q++ {
		if err := qc.X(q); err != nil {
			return nil, err
		}
	}
	for q := 0; q < s.numQubits; q++ {
		if err := qc.H(q); err != nil {
			return nil, err
		}
	}
	return qc.ToOperator(DiffuserName)
}

// BuildCircuit собирает полную схему поиска:
//
//  1. Адамар на каждой линии (равномерная суперпозиция).
//  2. iterations раз пара (оракул, диффузор); оба оператора строятся
//     один раз и переиспользуются по ссылке.
//  3. Измерение линии i в классический бит i — то же соответствие
//     индексов, что и при кодировании цели, поэтому строки результатов
//     сравнимы с целевой строкой напрямую.
//
// Ноль итераций законен: схема состоит из инициализации и измерения.
// Повторный вызов с теми же аргументами дает структурно идентичную схему.
func (s *Search) BuildCircuit(iterations int) (*quantum.Circuit, error) {
	if iterations < 0 {
		return nil, ErrInvalidIterations
	}
	qc, err := quantum.NewCircuit(s.numQubits, s.numQubits)
	if err != nil {
		return nil, err
	}

	for q := 0; q < s.numQubits; q++ {
		if err := qc.H(q); err != nil {
			return nil, err
		}
	}

	oracle, err := s.Oracle()
	if err != nil {
		return nil, err
	}
	diffuser, err := s.Diffuser()
	if err != nil {
		return nil, err
	}

	lines := make([]int, s.numQubits)
	for q := range lines {
		lines[q] = q
	}
	for i := 0; i < iterations; i++ {
		if err := qc.Append(oracle, lines); err != nil {
			return nil, err
		}
		if err := qc.Append(diffuser, lines); err != nil {
			return nil, err
		}
	}

	for q := 0; q < s.numQubits; q++ {
		if err := qc.Measure(q, q); err != nil {
			return nil, err
		}
	}
	return qc, nil
}
