package grover

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidQubitCount ошибка, возникающая при неположительном размере регистра
	ErrInvalidQubitCount = errors.New("количество кубитов должно быть положительным")

	// ErrInvalidSolutions ошибка, возникающая когда число решений выходит за пределы [1, 2^n]
	ErrInvalidSolutions = errors.New("число решений выходит за пределы пространства поиска")

	// ErrInvalidIterations ошибка, возникающая при отрицательном числе итераций усиления
	ErrInvalidIterations = errors.New("число итераций не может быть отрицательным")
)

// OptimalIterations возвращает асимптотически оптимальное число итераций
// усиления для регистра из nQubits кубитов и nSolutions отмеченных решений.
//
// Пусть N = 2^n и θ = arcsin(√(s/N)) — половинный угол поворота Гровера.
// Оптимум — round(π/(4θ) − 0.5). Округление выполняется к ближайшему
// четному (math.RoundToEven): при s/N = 1/2 значение попадает ровно на 0.5
// и округляется вниз к нулю. Результат 0 законен и означает, что вероятность
// цели уже максимальна и усиление не требуется (в частности при s = N).
func OptimalIterations(nQubits, nSolutions int) (int, error) {
	if nQubits <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQubitCount, nQubits)
	}
	space := math.Exp2(float64(nQubits))
	if nSolutions < 1 || float64(nSolutions) > space {
		return 0, fmt.Errorf("%w: %d решений при N=%g", ErrInvalidSolutions, nSolutions, space)
	}
	theta := math.Asin(math.Sqrt(float64(nSolutions) / space))
	return int(math.RoundToEven(math.Pi/(4*theta) - 0.5)), nil
}
