// Package report отображает результаты выполнения схемы: таблицу
// отсортированной гистограммы, текстовую гистограмму для записи в файл
// и итоговую сводку по целевому состоянию. Ядро построения схем от
// этого пакета не зависит.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/fillay12321/qsearch/sim"
)

// maxBarWidth ширина самого длинного столбца текстовой гистограммы
const maxBarWidth = 50

// RenderTable печатает гистограмму результатов в виде таблицы,
// отсортированной по убыванию счетчика. Строка целевого состояния
// подсвечивается.
func RenderTable(w io.Writer, counts sim.Counts, target string) {
	total := counts.Total()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Состояние", "Счетчик", "Доля"})
	table.SetAutoFormatHeaders(false)

	for _, outcome := range counts.Sorted() {
		n := counts[outcome]
		share := fmt.Sprintf("%.2f%%", 100*float64(n)/float64(total))
		row := []string{"|" + outcome + "⟩", fmt.Sprintf("%d", n), share}
		if outcome == target {
			table.Rich(row, []tablewriter.Colors{
				{tablewriter.Bold, tablewriter.FgHiMagentaColor},
				{tablewriter.Bold, tablewriter.FgHiMagentaColor},
				{tablewriter.Bold, tablewriter.FgHiMagentaColor},
			})
			continue
		}
		table.Append(row)
	}
	table.Render()
}

// Histogram возвращает текстовую гистограмму счетчиков: по строке на
// каждое наблюдавшееся состояние, столбцы масштабированы к максимуму,
// целевое состояние помечено стрелкой.
func Histogram(counts sim.Counts, target string) string {
	var peak uint64
	for _, n := range counts {
		if n > peak {
			peak = n
		}
	}
	if peak == 0 {
		return ""
	}

	var sb strings.Builder
	for _, outcome := range counts.Sorted() {
		n := counts[outcome]
		width := int(uint64(maxBarWidth) * n / peak)
		mark := "  "
		if outcome == target {
			mark = "->"
		}
		fmt.Fprintf(&sb, "%s |%s⟩ %s %d\n", mark, outcome, strings.Repeat("█", width), n)
	}
	return sb.String()
}

// WriteHistogram записывает текстовую гистограмму в файл.
func WriteHistogram(path string, counts sim.Counts, target string) error {
	if err := os.WriteFile(path, []byte(Histogram(counts, target)), 0o644); err != nil {
		return fmt.Errorf("не удалось записать гистограмму: %w", err)
	}
	return nil
}

// Summary печатает итоговую сводку: долю запусков, попавших в целевое
// состояние, и вердикт — совпадает ли пик распределения с целью.
func Summary(w io.Writer, counts sim.Counts, target string) {
	total := counts.Total()
	successRate := 100 * float64(counts[target]) / float64(total)
	fmt.Fprintf(w, "Целевое состояние |%s⟩ наблюдалось в %.2f%% запусков\n", target, successRate)

	top, _ := counts.Top()
	if top == target {
		color.New(color.FgGreen, color.Bold).Fprintln(w, "РЕЗУЛЬТАТ: пик вероятности совпадает с целью")
	} else {
		color.New(color.FgRed, color.Bold).Fprintf(w, "РЕЗУЛЬТАТ: пик |%s⟩ не совпадает с целью\n", top)
	}
}
