// Package quantum реализует абстрактное описание квантовой схемы:
// регистр кубитов, классический регистр считывания, примитивные вентили
// и составные операторы. Описание не выполняет никакой эволюции состояния,
// оно передается исполнителю (симулятору или реальному оборудованию).
package quantum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQubitCount ошибка, возникающая при недопустимом размере регистра
	ErrInvalidQubitCount = errors.New("количество кубитов должно быть положительным")

	// ErrQubitOutOfRange ошибка, возникающая когда индекс кубита выходит за пределы регистра
	ErrQubitOutOfRange = errors.New("индекс кубита выходит за пределы регистра")

	// ErrClbitOutOfRange ошибка, возникающая когда индекс классического бита выходит за пределы регистра
	ErrClbitOutOfRange = errors.New("индекс классического бита выходит за пределы регистра")

	// ErrDuplicateQubits ошибка, возникающая когда один кубит указан в операции дважды
	ErrDuplicateQubits = errors.New("кубит указан в операции более одного раза")

	// ErrOperatorArity ошибка, возникающая когда размер оператора не совпадает с числом линий размещения
	ErrOperatorArity = errors.New("число линий размещения не совпадает с размером оператора")

	// ErrOperatorMeasure ошибка, возникающая при попытке включить измерение в составной оператор
	ErrOperatorMeasure = errors.New("составной оператор не может содержать измерения")
)

// Gate идентифицирует примитивный вентиль схемы.
type Gate byte

const (
	// GateH вентиль Адамара
	GateH Gate = iota

	// GateX вентиль Паули-X (NOT)
	GateX

	// GateMCX многоуправляемый X: инвертирует целевой кубит, когда все
	// управляющие кубиты находятся в состоянии |1⟩. Ноль управляющих
	// кубитов вырождается в обычный X.
	GateMCX

	// GateMeasure измерение кубита в классический бит
	GateMeasure
)

// String возвращает мнемонику вентиля.
func (g Gate) String() string {
	switch g {
	case GateH:
		return "h"
	case GateX:
		return "x"
	case GateMCX:
		return "mcx"
	case GateMeasure:
		return "measure"
	default:
		return fmt.Sprintf("gate(%d)", byte(g))
	}
}

// Instruction описывает одно размещение в схеме: либо примитивный вентиль
// над конкретными кубитами, либо составной оператор над упорядоченным
// набором линий. Для GateMCX последний элемент Qubits — целевой кубит,
// остальные — управляющие.
type Instruction struct {
	Gate   Gate
	Qubits []int
	Clbit  int       // классический бит для GateMeasure, иначе -1
	Op     *Operator // составной оператор, nil для примитивов
}

// Controls возвращает управляющие кубиты инструкции MCX.
func (in Instruction) Controls() []int {
	if in.Gate != GateMCX || len(in.Qubits) == 0 {
		return nil
	}
	return in.Qubits[:len(in.Qubits)-1]
}

// Target возвращает целевой кубит инструкции.
func (in Instruction) Target() int {
	if len(in.Qubits) == 0 {
		return -1
	}
	return in.Qubits[len(in.Qubits)-1]
}

// Circuit представляет квантовую схему: n квантовых линий, m классических
// линий считывания и упорядоченную последовательность инструкций.
// Схема строится один раз и после передачи исполнителю не изменяется.
type Circuit struct {
	numQubits int
	numClbits int
	instrs    []Instruction
}

// NewCircuit создает пустую схему с заданным числом квантовых и классических линий.
func NewCircuit(numQubits, numClbits int) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, ErrInvalidQubitCount
	}
	if numClbits < 0 {
		return nil, ErrClbitOutOfRange
	}
	return &Circuit{
		numQubits: numQubits,
		numClbits: numClbits,
	}, nil
}

// NumQubits возвращает число квантовых линий схемы.
func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// NumClbits возвращает число классических линий считывания.
func (c *Circuit) NumClbits() int {
	return c.numClbits
}

func (c *Circuit) checkQubit(qubit int) error {
	if qubit < 0 || qubit >= c.numQubits {
		return fmt.Errorf("%w: %d", ErrQubitOutOfRange, qubit)
	}
	return nil
}

// H добавляет вентиль Адамара на указанную линию.
func (c *Circuit) H(qubit int) error {
	if err := c.checkQubit(qubit); err != nil {
		return err
	}
	c.instrs = append(c.instrs, Instruction{Gate: GateH, Qubits: []int{qubit}, Clbit: -1})
	return nil
}

// X добавляет вентиль Паули-X на указанную линию.
func (c *Circuit) X(qubit int) error {
	if err := c.checkQubit(qubit); err != nil {
		return err
	}
	c.instrs = append(c.instrs, Instruction{Gate: GateX, Qubits: []int{qubit}, Clbit: -1})
	return nil
}

// MCX добавляет многоуправляемый X с указанными управляющими кубитами и
// целевым кубитом. Пустой список управляющих кубитов допустим и означает
// безусловный X — этот случай возникает в схемах с единственным кубитом.
func (c *Circuit) MCX(controls []int, target int) error {
	if err := c.checkQubit(target); err != nil {
		return err
	}
	seen := map[int]bool{target: true}
	for _, ctrl := range controls {
		if err := c.checkQubit(ctrl); err != nil {
			return err
		}
		if seen[ctrl] {
			return fmt.Errorf("%w: %d", ErrDuplicateQubits, ctrl)
		}
		seen[ctrl] = true
	}
	qubits := make([]int, 0, len(controls)+1)
	qubits = append(qubits, controls...)
	qubits = append(qubits, target)
	c.instrs = append(c.instrs, Instruction{Gate: GateMCX, Qubits: qubits, Clbit: -1})
	return nil
}

// Measure добавляет измерение кубита в классический бит.
func (c *Circuit) Measure(qubit, clbit int) error {
	if err := c.checkQubit(qubit); err != nil {
		return err
	}
	if clbit < 0 || clbit >= c.numClbits {
		return fmt.Errorf("%w: %d", ErrClbitOutOfRange, clbit)
	}
	c.instrs = append(c.instrs, Instruction{Gate: GateMeasure, Qubits: []int{qubit}, Clbit: clbit})
	return nil
}

// Append размещает составной оператор на упорядоченном наборе линий.
// Линия i оператора отображается на qubits[i].
func (c *Circuit) Append(op *Operator, qubits []int) error {
	if op == nil || len(qubits) != op.NumQubits() {
		return ErrOperatorArity
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if err := c.checkQubit(q); err != nil {
			return err
		}
		if seen[q] {
			return fmt.Errorf("%w: %d", ErrDuplicateQubits, q)
		}
		seen[q] = true
	}
	placed := make([]int, len(qubits))
	copy(placed, qubits)
	c.instrs = append(c.instrs, Instruction{Qubits: placed, Clbit: -1, Op: op})
	return nil
}

// Instructions возвращает копию последовательности инструкций схемы.
func (c *Circuit) Instructions() []Instruction {
	out := make([]Instruction, len(c.instrs))
	copy(out, c.instrs)
	return out
}

// Flatten разворачивает составные операторы в примитивные инструкции,
// переотображая локальные индексы операторов на линии схемы. Именно этот
// вид потребляет исполнитель.
func (c *Circuit) Flatten() []Instruction {
	var out []Instruction
	for _, in := range c.instrs {
		if in.Op == nil {
			out = append(out, in)
			continue
		}
		for _, sub := range in.Op.instrs {
			mapped := make([]int, len(sub.Qubits))
			for i, q := range sub.Qubits {
				mapped[i] = in.Qubits[q]
			}
			out = append(out, Instruction{Gate: sub.Gate, Qubits: mapped, Clbit: -1})
		}
	}
	return out
}

// CountOps возвращает количество инструкций по именам, аналог count_ops
// у исполнителей. Составные операторы считаются по их именам.
func (c *Circuit) CountOps() map[string]int {
	out := make(map[string]int)
	for _, in := range c.instrs {
		if in.Op != nil {
			out[in.Op.Name()]++
			continue
		}
		out[in.Gate.String()]++
	}
	return out
}

// Depth возвращает глубину схемы: максимальное число инструкций,
// затрагивающих одну линию.
func (c *Circuit) Depth() int {
	busy := make([]int, c.numQubits)
	depth := 0
	for _, in := range c.instrs {
		for _, q := range in.Qubits {
			busy[q]++
			if busy[q] > depth {
				depth = busy[q]
			}
		}
	}
	return depth
}

// Draw возвращает текстовую диаграмму схемы для диагностики. Каждая
// инструкция занимает одну колонку, составные операторы рисуются
// именованными блоками на всех своих линиях.
func (c *Circuit) Draw() string {
	cells := make([][]string, c.numQubits)
	for q := range cells {
		cells[q] = make([]string, len(c.instrs))
	}

	for col, in := range c.instrs {
		switch {
		case in.Op != nil:
			label := "[" + in.Op.Name() + "]"
			for _, q := range in.Qubits {
				cells[q][col] = label
			}
		case in.Gate == GateMCX:
			for _, ctrl := range in.Controls() {
				cells[ctrl][col] = "■"
			}
			cells[in.Target()][col] = "(X)"
		case in.Gate == GateMeasure:
			cells[in.Qubits[0]][col] = fmt.Sprintf("M=c%d", in.Clbit)
		default:
			cells[in.Qubits[0]][col] = strings.ToUpper(in.Gate.String())
		}
	}

	widths := make([]int, len(c.instrs))
	for col := range widths {
		for q := 0; q < c.numQubits; q++ {
			if w := len([]rune(cells[q][col])); w > widths[col] {
				widths[col] = w
			}
		}
	}

	var sb strings.Builder
	for q := 0; q < c.numQubits; q++ {
		fmt.Fprintf(&sb, "q_%d: ", q)
		for col := range cells[q] {
			sb.WriteString("─")
			cell := cells[q][col]
			pad := widths[col] - len([]rune(cell))
			left := pad / 2
			sb.WriteString(strings.Repeat("─", left))
			if cell == "" {
				sb.WriteString(strings.Repeat("─", widths[col]-left))
			} else {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat("─", pad-left))
			}
			sb.WriteString("─")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
