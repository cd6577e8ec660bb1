// Package report exports a player's profile as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

const (
	sheetSummary      = "Summary"
	sheetHistory      = "History"
	sheetAchievements = "Achievements"
	sheetMastery      = "Mastery"

	timeLayout = "2006-01-02 15:04:05"
)

// Build creates the workbook for a profile. The caller closes the file.
func Build(profile entities.UserProfile) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetHistory, sheetAchievements, sheetMastery} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("new style: %w", err)
	}

	steps := []func(*excelize.File, entities.UserProfile, int) error{
		writeSummary,
		writeHistory,
		writeAchievements,
		writeMastery,
	}
	for _, step := range steps {
		if err := step(f, profile, header); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Write renders the workbook to w.
func Write(w io.Writer, profile entities.UserProfile) error {
	f, err := Build(profile)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// Save renders the workbook to a file.
func Save(path string, profile entities.UserProfile) error {
	f, err := Build(profile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, p entities.UserProfile, header int) error {
	st := p.Stats
	rows := [][]any{
		{"Player", p.Username},
		{"Level", p.Level},
		{"Experience", p.Experience},
		{"Coins", p.Coins},
		{"Games played", st.TotalGames},
		{"Questions answered", st.TotalQuestions},
		{"Correct answers", st.TotalCorrect},
		{"Best score", st.BestScore},
		{"Average accuracy, %", percent(st.AverageAccuracy())},
		{"Average response time, s", round2(st.AverageResponseTime)},
	}
	if t := p.LearningProfile.Trends; t != nil {
		rows = append(rows,
			[]any{"Score trend", round2(t.Score)},
			[]any{"Accuracy trend", round2(t.Accuracy)},
			[]any{"Response time trend", round2(t.ResponseTime)},
			[]any{"Trends updated", t.LastUpdated.Format(timeLayout)},
		)
	}

	if err := writeRows(f, sheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), header); err != nil {
		return fmt.Errorf("set style: %w", err)
	}
	return f.SetColWidth(sheetSummary, "A", "A", 28)
}

func writeHistory(f *excelize.File, p entities.UserProfile, header int) error {
	rows := [][]any{{"Date", "Mode", "Score", "Accuracy, %", "Avg response, s", "Coins", "XP"}}
	for _, r := range p.GameHistory {
		rows = append(rows, []any{
			r.Date.Format(timeLayout),
			string(r.Mode),
			r.Score,
			percent(r.Accuracy),
			round2(r.AvgResponseTime),
			r.Coins,
			r.XP,
		})
	}

	if err := writeRows(f, sheetHistory, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetHistory, "A1", "G1", header); err != nil {
		return fmt.Errorf("set style: %w", err)
	}
	if err := f.SetColWidth(sheetHistory, "A", "A", 20); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	if len(p.GameHistory) < 2 {
		return nil
	}

	last := len(rows)
	series := func(col string) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheetHistory, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetHistory, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetHistory, col, col, last),
		}
	}

	err := f.AddChart(sheetHistory, "I2", &excelize.Chart{
		Type:   excelize.Line,
		Series: []excelize.ChartSeries{series("C"), series("D")},
		Title:  []excelize.RichTextRun{{Text: "Performance over time"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}

func writeAchievements(f *excelize.File, p entities.UserProfile, header int) error {
	rows := [][]any{{"Achievement", "Description", "Progress", "Target", "Completed"}}
	for _, a := range p.Achievements {
		rows = append(rows, []any{a.Name, a.Description, a.Progress, a.Target, a.Completed})
	}

	if err := writeRows(f, sheetAchievements, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetAchievements, "A1", "E1", header); err != nil {
		return fmt.Errorf("set style: %w", err)
	}
	return f.SetColWidth(sheetAchievements, "A", "B", 30)
}

func writeMastery(f *excelize.File, p entities.UserProfile, header int) error {
	totals := CategoryTotals(p.GameHistory)

	rows := [][]any{{"Category", "Correct", "Total", "Mastery, %"}}
	for _, c := range entities.AllCategories() {
		m, ok := totals[c]
		if !ok {
			continue
		}
		rows = append(rows, []any{c.DisplayName(), m.Correct, m.Total, m.Mastery})
	}

	if err := writeRows(f, sheetMastery, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetMastery, "A1", "D1", header); err != nil {
		return fmt.Errorf("set style: %w", err)
	}
	return f.SetColWidth(sheetMastery, "A", "A", 24)
}

// CategoryTotals sums the per-category tallies of every stored session.
func CategoryTotals(history []entities.SessionResult) map[entities.Category]entities.CategoryMastery {
	out := make(map[entities.Category]entities.CategoryMastery)
	for _, r := range history {
		for c, m := range r.Mastery {
			t := out[c]
			t.Correct += m.Correct
			t.Total += m.Total
			out[c] = t
		}
	}
	for c, t := range out {
		if t.Total > 0 {
			t.Mastery = int(math.Round(float64(t.Correct) / float64(t.Total) * 100))
		}
		out[c] = t
	}
	return out
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func percent(v float64) float64 {
	return round2(v * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
