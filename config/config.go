// Package config загружает и проверяет конфигурацию запуска поиска.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fillay12321/qsearch/quantum"
)

// DefaultOutputFilename имя файла гистограммы, если оно не задано
const DefaultOutputFilename = "histogram.txt"

var (
	// ErrInvalidShots ошибка, возникающая при неположительном числе запусков
	ErrInvalidShots = errors.New("число запусков должно быть положительным")
)

// Config описывает параметры одного запуска поиска. Формат файла — JSON,
// имена полей совпадают с config.json.
type Config struct {
	// NQubits размер регистра
	NQubits int `json:"n_qubits"`

	// TargetState целевая строка битов длины NQubits
	TargetState string `json:"target_state"`

	// Shots число независимых запусков схемы
	Shots uint64 `json:"shots"`

	// UseRealHardware выполнять схему на реальном оборудовании
	UseRealHardware bool `json:"use_real_hardware"`

	// OutputFilename файл для текстовой гистограммы результатов
	OutputFilename string `json:"output_filename"`
}

// Load читает конфигурацию из JSON-файла.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("некорректный JSON в %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность конфигурации и подставляет значения
// по умолчанию. Ошибки валидации не восстанавливаются: запуск с
// некорректными параметрами прерывается сразу.
func (c *Config) Validate() error {
	if c.NQubits <= 0 {
		return fmt.Errorf("%w: %d", quantum.ErrInvalidQubitCount, c.NQubits)
	}
	if err := quantum.ValidateTarget(c.TargetState, c.NQubits); err != nil {
		return err
	}
	if c.Shots == 0 {
		return ErrInvalidShots
	}
	if c.OutputFilename == "" {
		c.OutputFilename = DefaultOutputFilename
	}
	return nil
}
