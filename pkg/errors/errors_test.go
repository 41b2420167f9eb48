package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewSingularMatrixError(t *testing.T) {
	err := NewSingularMatrixError("CoefficientEstimate", 3, 4)

	want := "stepreg: CoefficientEstimate: gram matrix of 3x4 design is not invertible"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ErrSingularMatrix で判定できること
	if !Is(err, ErrSingularMatrix) {
		t.Error("SingularMatrixError should match ErrSingularMatrix")
	}

	var smErr *SingularMatrixError
	if !As(err, &smErr) {
		t.Fatal("Error should be castable to *SingularMatrixError")
	}
	if smErr.Rows != 3 || smErr.Cols != 4 {
		t.Errorf("unexpected shape %dx%d", smErr.Rows, smErr.Cols)
	}

	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}
}

func TestNewDegreesOfFreedomError(t *testing.T) {
	tests := []struct {
		name    string
		kind    DegreesOfFreedomKind
		df1     int
		df2     int
		wantMsg string
	}{
		{
			name:    "invalid",
			kind:    InvalidDegreesOfFreedom,
			df1:     0,
			df2:     5,
			wantMsg: "stepreg: PartialF: InvalidDegreesOfFreedom (df1=0, df2=5)",
		},
		{
			name:    "degenerate",
			kind:    DegenerateDegreesOfFreedom,
			df1:     2,
			df2:     -1,
			wantMsg: "stepreg: PartialF: DegenerateDegreesOfFreedom (df1=2, df2=-1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDegreesOfFreedomError("PartialF", tt.kind, tt.df1, tt.df2)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var dfErr *DegreesOfFreedomError
			if !As(err, &dfErr) {
				t.Fatal("Error should be castable to *DegreesOfFreedomError")
			}
			if dfErr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", dfErr.Kind, tt.kind)
			}
		})
	}
}

func TestNewUndefinedLogarithmError(t *testing.T) {
	err := NewUndefinedLogarithmError("AIC", 0)
	want := "stepreg: AIC: logarithm of non-positive value 0"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("SelectColumns", 7, 6, 0)

	want := "stepreg: SelectColumns: dimension mismatch on axis 0 (rows). Expected 7, got 6"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrExhaustedCandidatePool, "stepwise: selecting initial: %d candidates", 4)

	if !Is(wrapped, ErrExhaustedCandidatePool) {
		t.Error("wrapped error should match the sentinel")
	}
	if !strings.Contains(wrapped.Error(), "4 candidates") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestWarnRoutesToZerologFunc(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewMissingValueWarning(-200, 3, "dropped"))

	if len(got) != 1 {
		t.Fatalf("expected one warning, got %d", len(got))
	}
	want := "3 rows contain the missing-value sentinel -200 and were dropped"
	if got[0].Error() != want {
		t.Errorf("warning = %q, want %q", got[0].Error(), want)
	}
}
