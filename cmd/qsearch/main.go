// qsearch собирает схему поиска Гровера по конфигурации, выполняет ее на
// локальном симуляторе и печатает гистограмму результатов.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/fillay12321/qsearch/config"
	"github.com/fillay12321/qsearch/grover"
	"github.com/fillay12321/qsearch/report"
	"github.com/fillay12321/qsearch/sim"
)

// ErrHardwareUnsupported выполнение на реальном оборудовании не входит в
// возможности локального исполнителя.
var ErrHardwareUnsupported = errors.New("выполнение на реальном оборудовании не поддерживается")

func main() {
	app := &cli.App{
		Name:  "qsearch",
		Usage: "квантовый поиск Гровера: построение схемы и симуляция",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "путь к JSON-конфигурации",
				Value:   "config.json",
			},
			&cli.IntFlag{
				Name:  "qubits",
				Usage: "размер регистра (переопределяет конфигурацию)",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "целевая строка битов (переопределяет конфигурацию)",
			},
			&cli.Uint64Flag{
				Name:  "shots",
				Usage: "число запусков схемы (переопределяет конфигурацию)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "файл текстовой гистограммы (переопределяет конфигурацию)",
			},
			&cli.BoolFlag{
				Name:  "hardware",
				Usage: "выполнить на реальном оборудовании",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "подробное логирование",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("запуск завершился ошибкой", "error", err)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log.Info("конфигурация загружена",
		"qubits", cfg.NQubits,
		"target", cfg.TargetState,
		"shots", cfg.Shots,
		"hardware", cfg.UseRealHardware,
	)

	iterations, err := grover.OptimalIterations(cfg.NQubits, 1)
	if err != nil {
		return err
	}
	log.Info("вычислено оптимальное число итераций", "iterations", iterations)

	search, err := grover.NewSearch(cfg.NQubits, cfg.TargetState)
	if err != nil {
		return err
	}
	circ, err := search.BuildCircuit(iterations)
	if err != nil {
		return err
	}

	fmt.Println("=== Диаграмма схемы ===")
	fmt.Print(circ.Draw())
	log.Debug("схема собрана", "depth", circ.Depth(), "ops", circ.CountOps())

	if cfg.UseRealHardware {
		// Выбор наименее загруженного удаленного устройства, отправка
		// задания и опрос статуса — ответственность внешнего адаптера.
		return ErrHardwareUnsupported
	}

	executor := sim.NewSimulator()
	counts, err := executor.Run(context.Background(), circ, cfg.Shots)
	if err != nil {
		return err
	}

	fmt.Println("=== Результаты эксперимента ===")
	report.RenderTable(os.Stdout, counts, cfg.TargetState)
	report.Summary(os.Stdout, counts, cfg.TargetState)

	if err := report.WriteHistogram(cfg.OutputFilename, counts, cfg.TargetState); err != nil {
		return err
	}
	log.Info("гистограмма сохранена", "file", cfg.OutputFilename)
	return nil
}

// loadConfig читает файл конфигурации и накладывает поверх него флаги
// командной строки. Файл не обязателен, если все параметры заданы флагами.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	path := ctx.String("config")
	if _, err := os.Stat(path); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if ctx.IsSet("config") {
		return nil, fmt.Errorf("конфигурация %s недоступна: %w", path, err)
	}

	if ctx.IsSet("qubits") {
		cfg.NQubits = ctx.Int("qubits")
	}
	if ctx.IsSet("target") {
		cfg.TargetState = ctx.String("target")
	}
	if ctx.IsSet("shots") {
		cfg.Shots = ctx.Uint64("shots")
	}
	if ctx.IsSet("output") {
		cfg.OutputFilename = ctx.String("output")
	}
	if ctx.IsSet("hardware") {
		cfg.UseRealHardware = ctx.Bool("hardware")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
