package dataset

import (
	"strings"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
)

// MissingSentinel marks a missing measurement in the air-quality data.
const MissingSentinel = -200.0

// MissingPolicy decides what happens to rows holding MissingSentinel or an
// empty field.
type MissingPolicy int

const (
	// MissingDrop removes the row and emits a MissingValueWarning.
	MissingDrop MissingPolicy = iota
	// MissingKeep passes the sentinel through as an ordinary value.
	MissingKeep
	// MissingError fails the load at the first missing value.
	MissingError
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingDrop:
		return "drop"
	case MissingKeep:
		return "keep"
	case MissingError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseMissingPolicy parses "drop", "keep" or "error".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop", "":
		return MissingDrop, nil
	case "keep":
		return MissingKeep, nil
	case "error":
		return MissingError, nil
	default:
		return 0, errors.NewValidationError("missing", "unknown missing-value policy", s)
	}
}

// Options controls how a delimited file becomes a design matrix.
type Options struct {
	Delimiter rune
	// FirstColumn and LastColumn select the half-open field range
	// [FirstColumn, LastColumn) of every record.
	FirstColumn int
	LastColumn  int
	// ResponseColumn is the offset of the response inside the selected range.
	ResponseColumn int
	// MaxRows bounds the data rows read after the header; 0 reads all.
	MaxRows int
	// SkipRows data rows are discarded after reading.
	SkipRows     int
	HasHeader    bool
	DecimalComma bool
	Missing      MissingPolicy
	Logger       log.Logger
}

// DefaultOptions matches the UCI air-quality file: semicolon separated,
// fields 2 to 13 with benzene (C6H6) as response.
func DefaultOptions() Options {
	return Options{
		Delimiter:      ';',
		FirstColumn:    2,
		LastColumn:     14,
		ResponseColumn: 3,
		MaxRows:        9358,
		SkipRows:       1,
		HasHeader:      true,
		DecimalComma:   true,
		Missing:        MissingDrop,
	}
}

// Validate checks the column range and row bounds.
func (o Options) Validate() error {
	if o.FirstColumn < 0 {
		return errors.NewValidationError("first_column", "must be non-negative", o.FirstColumn)
	}
	width := o.LastColumn - o.FirstColumn
	if width < 2 {
		return errors.NewValidationError("last_column", "range must hold a response and at least one predictor", [2]int{o.FirstColumn, o.LastColumn})
	}
	if o.ResponseColumn < 0 || o.ResponseColumn >= width {
		return errors.NewValidationError("response_column", "must be an offset inside the selected range", o.ResponseColumn)
	}
	if o.MaxRows < 0 {
		return errors.NewValidationError("max_rows", "must be non-negative", o.MaxRows)
	}
	if o.SkipRows < 0 {
		return errors.NewValidationError("skip_rows", "must be non-negative", o.SkipRows)
	}
	if o.Delimiter == 0 || o.Delimiter == '\n' || o.Delimiter == '"' {
		return errors.NewValidationError("delimiter", "invalid field delimiter", string(o.Delimiter))
	}
	if o.DecimalComma && o.Delimiter == ',' {
		return errors.NewValidationError("decimal_comma", "cannot be used with a comma delimiter", true)
	}
	if o.Missing < MissingDrop || o.Missing > MissingError {
		return errors.NewValidationError("missing", "unknown missing-value policy", int(o.Missing))
	}
	return nil
}
