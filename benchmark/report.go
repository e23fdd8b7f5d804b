package benchmark

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Reporting is a pure consumer of the result types: the engines never write
// anything themselves. Detailed results go to timestamped JSON, summaries to
// CSV for spreadsheet import.

// SaveResultSet writes a shootout result as JSON plus a CSV summary into dir.
// Returns the JSON path.
func SaveResultSet(rs *ResultSet, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	stamp := rs.CreatedAt.Format("2006-01-02_15-04-05")

	jsonPath := filepath.Join(dir, fmt.Sprintf("shootout_%s_%s.json", rs.Problem, stamp))
	if err := writeJSON(jsonPath, rs); err != nil {
		return "", err
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("shootout_%s_%s.csv", rs.Problem, stamp))
	if err := writeShootoutCSV(csvPath, rs); err != nil {
		return "", err
	}
	return jsonPath, nil
}

// SaveWorkPrecisionSet writes a sweep grid as JSON plus a CSV summary into
// dir. Returns the JSON path.
func SaveWorkPrecisionSet(w *WorkPrecisionSet, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	stamp := w.CreatedAt.Format("2006-01-02_15-04-05")

	jsonPath := filepath.Join(dir, fmt.Sprintf("workprecision_%s_%s.json", w.Problem, stamp))
	if err := writeJSON(jsonPath, w); err != nil {
		return "", err
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("workprecision_%s_%s.csv", w.Problem, stamp))
	if err := writeWorkPrecisionCSV(csvPath, w); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write results file")
	}
	return nil
}

func writeShootoutCSV(path string, rs *ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("Config,Mean_Time_s,Error,Efficiency,EffRatio,Success_Fraction,Best\n"); err != nil {
		return err
	}
	for i := range rs.Summaries {
		s := &rs.Summaries[i]
		best := ""
		if i == rs.BestIndex {
			best = "*"
		}
		line := fmt.Sprintf("%s,%s,%s,%s,%s,%.4f,%s\n",
			s.Config.Label(),
			csvFloat(s.MeanTime, s.Succeeded),
			csvFloat(s.Error, s.Succeeded),
			csvFloat(rs.Efficiencies[i], s.Succeeded),
			csvFloat(rs.EffRatios[i], s.Succeeded),
			s.SuccessFraction,
			best,
		)
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}

func writeWorkPrecisionCSV(path string, w *WorkPrecisionSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("Config,Tolerance_Index,AbsTol,RelTol,Mean_Time_s,Error,Success_Fraction\n"); err != nil {
		return err
	}
	for _, row := range w.Cells {
		for j := range row {
			s := &row[j]
			tol := w.Tolerances[j]
			line := fmt.Sprintf("%s,%d,%g,%g,%s,%s,%.4f\n",
				s.Config.Label(), j, tol.Abs, tol.Rel,
				csvFloat(s.MeanTime, s.Succeeded),
				csvFloat(s.Error, s.Succeeded),
				s.SuccessFraction,
			)
			if _, err := f.WriteString(line); err != nil {
				return err
			}
		}
	}
	return nil
}

// csvFloat renders failed or non-finite cells as empty fields so spreadsheet
// tools do not choke on NaN/Inf.
func csvFloat(v float64, ok bool) string {
	if !ok || math.IsNaN(v) {
		return ""
	}
	if math.IsInf(v, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.6e", v)
}
