package quantum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTargetLength ошибка, возникающая когда длина целевой строки не равна размеру регистра
	ErrTargetLength = errors.New("длина целевого состояния не совпадает с размером регистра")

	// ErrTargetAlphabet ошибка, возникающая когда целевая строка содержит символы кроме '0' и '1'
	ErrTargetAlphabet = errors.New("целевое состояние должно состоять только из символов '0' и '1'")
)

// Принятое во всем проекте соглашение о порядке битов — little-endian:
// крайний правый символ строки соответствует линии 0, крайний левый —
// линии n-1. То же соглашение используют строки результатов измерений,
// поэтому их можно сравнивать с целевой строкой напрямую.

// ValidateTarget проверяет, что целевая строка имеет длину n и состоит
// только из символов '0' и '1'.
func ValidateTarget(target string, numQubits int) error {
	if len(target) != numQubits {
		return fmt.Errorf("%w: длина %d при %d кубитах", ErrTargetLength, len(target), numQubits)
	}
	for i := 0; i < len(target); i++ {
		if target[i] != '0' && target[i] != '1' {
			return fmt.Errorf("%w: %q", ErrTargetAlphabet, target)
		}
	}
	return nil
}

// TargetBit возвращает бит целевой строки, соответствующий указанной
// линии регистра. Строка должна быть заранее проверена ValidateTarget.
func TargetBit(target string, line int) byte {
	return target[len(target)-1-line]
}

// FormatOutcome переводит базисное состояние, заданное целым числом,
// в строку битов той же ориентации, что и целевая строка: бит линии i —
// это i-й бит числа.
func FormatOutcome(value uint64, numBits int) string {
	var sb strings.Builder
	sb.Grow(numBits)
	for line := numBits - 1; line >= 0; line-- {
		if (value>>line)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseOutcome переводит строку битов обратно в номер базисного состояния.
func ParseOutcome(outcome string) (uint64, error) {
	if err := ValidateTarget(outcome, len(outcome)); err != nil {
		return 0, err
	}
	var value uint64
	for line := 0; line < len(outcome); line++ {
		if TargetBit(outcome, line) == '1' {
			value |= 1 << line
		}
	}
	return value, nil
}
