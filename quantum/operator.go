package quantum

// Operator представляет именованный неизменяемый составной оператор —
// подсхему, которую можно разместить как единое целое на упорядоченном
// наборе линий другой схемы. Оператор не владеет внешним состоянием,
// один и тот же экземпляр безопасно размещать многократно.
type Operator struct {
	name      string
	numQubits int
	instrs    []Instruction
}

// ToOperator упаковывает построенную схему в составной оператор с
// указанным именем. Схема не должна содержать измерений: оператор
// описывает чисто унитарное преобразование.
func (c *Circuit) ToOperator(name string) (*Operator, error) {
	instrs := make([]Instruction, 0, len(c.instrs))
	for _, in := range c.Flatten() {
		if in.Gate == GateMeasure {
			return nil, ErrOperatorMeasure
		}
		qubits := make([]int, len(in.Qubits))
		copy(qubits, in.Qubits)
		instrs = append(instrs, Instruction{Gate: in.Gate, Qubits: qubits, Clbit: -1})
	}
	return &Operator{
		name:      name,
		numQubits: c.numQubits,
		instrs:    instrs,
	}, nil
}

// Name возвращает имя оператора, используемое при отрисовке схемы.
func (op *Operator) Name() string {
	return op.name
}

// NumQubits возвращает число линий, занимаемых оператором.
func (op *Operator) NumQubits() int {
	return op.numQubits
}

// Instructions возвращает копию примитивных инструкций оператора
// в его локальной нумерации линий.
func (op *Operator) Instructions() []Instruction {
	out := make([]Instruction, len(op.instrs))
	copy(out, op.instrs)
	return out
}
