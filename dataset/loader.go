// Package dataset reads the delimited air-quality file into a design matrix
// with a leading intercept column and a response vector.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/stepreg/linear"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
)

// InterceptName labels design column 0.
const InterceptName = "(intercept)"

// Dataset is a loaded design matrix and response.
type Dataset struct {
	Design   *mat.Dense
	Response *mat.VecDense
	// Names has one label per design column, InterceptName first.
	Names        []string
	ResponseName string
	DroppedRows  int
}

// ColumnSummary describes one design column.
type ColumnSummary struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Load parses r according to opts.
func Load(r io.Reader, opts Options) (*Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.With(log.ComponentKey, "dataset")

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	width := opts.LastColumn - opts.FirstColumn
	names := defaultNames(width)
	line := 0

	if opts.HasHeader {
		header, err := cr.Read()
		line++
		if err == io.EOF {
			return nil, errors.Wrap(errors.ErrEmptyData, "dataset: no header")
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset: read header")
		}
		for k := 0; k < width; k++ {
			if j := opts.FirstColumn + k; j < len(header) && strings.TrimSpace(header[j]) != "" {
				names[k] = strings.TrimSpace(header[j])
			}
		}
	}

	var rows [][]float64
	read, dropped := 0, 0
	for opts.MaxRows == 0 || read < opts.MaxRows {
		record, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: line %d", line)
		}
		if blank(record, opts) {
			continue
		}
		read++
		if read <= opts.SkipRows {
			continue
		}

		row, missing, err := parseRecord(record, opts, line)
		if err != nil {
			return nil, err
		}
		if missing {
			switch opts.Missing {
			case MissingDrop:
				dropped++
				continue
			case MissingError:
				return nil, errors.NewValidationError("missing", "row holds a missing value", line)
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset: no data rows")
	}
	if dropped > 0 {
		errors.Warn(errors.NewMissingValueWarning(MissingSentinel, dropped, "dropped"))
	}

	ds := assemble(rows, names, opts.ResponseColumn)
	ds.DroppedRows = dropped

	logger.Info("Dataset loaded",
		log.SamplesKey, len(rows),
		log.FeaturesKey, len(ds.Names)-1,
		log.DroppedRowsKey, dropped,
	)
	return ds, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	ds, err := Load(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: %s", path)
	}
	return ds, nil
}

// blank は選択範囲のフィールドがすべて空の行（末尾の ";;;;" 行など）
func blank(record []string, opts Options) bool {
	for j := opts.FirstColumn; j < opts.LastColumn && j < len(record); j++ {
		if strings.TrimSpace(record[j]) != "" {
			return false
		}
	}
	return true
}

// parseRecord converts the selected fields. Empty fields and the sentinel
// count as missing; under MissingKeep an empty field becomes the sentinel.
func parseRecord(record []string, opts Options, line int) ([]float64, bool, error) {
	width := opts.LastColumn - opts.FirstColumn
	if len(record) < opts.LastColumn {
		return nil, false, errors.NewDimensionError("dataset: line "+strconv.Itoa(line), opts.LastColumn, len(record), 1)
	}

	row := make([]float64, width)
	missing := false
	for k := 0; k < width; k++ {
		field := strings.TrimSpace(record[opts.FirstColumn+k])
		if field == "" {
			row[k] = MissingSentinel
			missing = true
			continue
		}
		if opts.DecimalComma {
			field = strings.Replace(field, ",", ".", 1)
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false, errors.Wrapf(errors.NewValueError("dataset", err.Error()), "line %d, field %d", line, opts.FirstColumn+k)
		}
		if v == MissingSentinel {
			missing = true
		}
		row[k] = v
	}
	return row, missing, nil
}

// assemble splits the response column off and prepends the intercept.
func assemble(rows [][]float64, names []string, response int) *Dataset {
	n, width := len(rows), len(rows[0])
	x := mat.NewDense(n, width-1, nil)
	y := mat.NewVecDense(n, nil)

	for i, row := range rows {
		y.SetVec(i, row[response])
		k := 0
		for j, v := range row {
			if j == response {
				continue
			}
			x.Set(i, k, v)
			k++
		}
	}

	labels := make([]string, 0, width)
	labels = append(labels, InterceptName)
	for j, name := range names {
		if j != response {
			labels = append(labels, name)
		}
	}

	return &Dataset{
		Design:       linear.NewDesign(x),
		Response:     y,
		Names:        labels,
		ResponseName: names[response],
	}
}

func defaultNames(width int) []string {
	names := make([]string, width)
	for k := range names {
		names[k] = "x" + strconv.Itoa(k+1)
	}
	return names
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int {
	return d.Response.Len()
}

// Describe summarises every predictor column and the response, in that order.
func (d *Dataset) Describe() []ColumnSummary {
	_, c := d.Design.Dims()
	out := make([]ColumnSummary, 0, c)
	for j := 1; j < c; j++ {
		out = append(out, summarise(d.Names[j], mat.Col(nil, j, d.Design)))
	}
	return append(out, summarise(d.ResponseName, mat.Col(nil, 0, d.Response)))
}

func summarise(name string, v []float64) ColumnSummary {
	mean, std := stat.MeanStdDev(v, nil)
	return ColumnSummary{
		Name:   name,
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(v),
		Max:    floats.Max(v),
	}
}
