package sim

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/fillay12321/qsearch/quantum"
)

var (
	// ErrQubitOutOfRange ошибка, возникающая при обращении к несуществующему кубиту
	ErrQubitOutOfRange = errors.New("индекс кубита выходит за пределы доступного диапазона")

	// ErrTooManyQubits ошибка, возникающая при превышении поддерживаемого размера регистра
	ErrTooManyQubits = errors.New("превышено максимальное количество поддерживаемых кубитов")

	// ErrUnsupportedGate ошибка, возникающая при инструкции, неизвестной симулятору
	ErrUnsupportedGate = errors.New("симулятор не поддерживает инструкцию")
)

// MaxQubits ограничивает размер симулируемого регистра:
// 25 кубитов = 2^25 = 33 554 432 комплексных амплитуд.
const MaxQubits = 25

// StateVector хранит полный вектор состояния регистра из n кубитов —
// 2^n комплексных амплитуд. Бит i базисного индекса соответствует
// линии i, то есть тому же little-endian соглашению, что и целевые строки.
type StateVector struct {
	numQubits int
	amps      []complex128

	// Мьютекс для потокобезопасности
	mutex sync.Mutex
}

// NewStateVector создает вектор состояния в начальном состоянии |0...0⟩.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits <= 0 {
		return nil, quantum.ErrInvalidQubitCount
	}
	if numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyQubits, numQubits, MaxQubits)
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = complex(1, 0)
	return &StateVector{
		numQubits: numQubits,
		amps:      amps,
	}, nil
}

// NumQubits возвращает размер регистра.
func (s *StateVector) NumQubits() int {
	return s.numQubits
}

func (s *StateVector) checkQubit(qubit int) error {
	if qubit < 0 || qubit >= s.numQubits {
		return fmt.Errorf("%w: %d", ErrQubitOutOfRange, qubit)
	}
	return nil
}

// ApplyHadamard применяет вентиль Адамара к указанному кубиту.
func (s *StateVector) ApplyHadamard(qubit int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkQubit(qubit); err != nil {
		return err
	}

	bit := 1 << qubit
	h := complex(1/math.Sqrt2, 0)
	for i := 0; i < len(s.amps); i++ {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = h * (a0 + a1)
			s.amps[j] = h * (a0 - a1)
		}
	}
	return nil
}

// ApplyPauliX применяет вентиль Паули-X (NOT) к указанному кубиту:
// амплитуды состояний с битом 0 и 1 меняются местами.
func (s *StateVector) ApplyPauliX(qubit int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkQubit(qubit); err != nil {
		return err
	}

	bit := 1 << qubit
	for i := 0; i < len(s.amps); i++ {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
	return nil
}

// ApplyMCX применяет многоуправляемый X: целевой кубит инвертируется
// только в тех базисных состояниях, где все управляющие кубиты равны 1.
// Пустой список управляющих кубитов дает обычный X.
func (s *StateVector) ApplyMCX(controls []int, target int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkQubit(target); err != nil {
		return err
	}
	mask := 0
	for _, ctrl := range controls {
		if err := s.checkQubit(ctrl); err != nil {
			return err
		}
		if ctrl == target {
			return fmt.Errorf("%w: %d", quantum.ErrDuplicateQubits, ctrl)
		}
		mask |= 1 << ctrl
	}

	tbit := 1 << target
	for i := 0; i < len(s.amps); i++ {
		if i&mask == mask && i&tbit == 0 {
			j := i | tbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
	return nil
}

// Apply применяет к вектору состояния одну примитивную инструкцию схемы.
// Измерения здесь не обрабатываются: симулятор собирает их отдельно
// и сэмплирует итоговое распределение.
func (s *StateVector) Apply(in quantum.Instruction) error {
	switch in.Gate {
	case quantum.GateH:
		return s.ApplyHadamard(in.Target())
	case quantum.GateX:
		return s.ApplyPauliX(in.Target())
	case quantum.GateMCX:
		return s.ApplyMCX(in.Controls(), in.Target())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGate, in.Gate)
	}
}

// Probabilities возвращает вероятности всех 2^n базисных состояний.
func (s *StateVector) Probabilities() []float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

// Amplitudes возвращает копию текущего вектора состояния.
func (s *StateVector) Amplitudes() []complex128 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}
