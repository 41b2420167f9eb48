package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/internal/testdata"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

func TestStandardScaler_Design(t *testing.T) {
	z := testdata.ToyDesign()
	scaler := NewStandardScaler()

	scaled, err := scaler.FitTransform(z)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	r, c := scaled.Dims()
	// 切片列はそのまま
	for i := 0; i < r; i++ {
		if scaled.At(i, 0) != 1 {
			t.Fatalf("intercept column changed at row %d: %g", i, scaled.At(i, 0))
		}
	}

	for j := 1; j < c; j++ {
		col := mat.Col(nil, j, scaled)
		var sum, sq float64
		for _, v := range col {
			sum += v
		}
		mean := sum / float64(r)
		for _, v := range col {
			sq += (v - mean) * (v - mean)
		}
		std := math.Sqrt(sq / float64(r-1))

		if math.Abs(mean) > 1e-10 {
			t.Errorf("column %d: expected mean 0, got %g", j, mean)
		}
		if math.Abs(std-1) > 1e-10 {
			t.Errorf("column %d: expected std 1, got %g", j, std)
		}
	}

	if got := scaler.String(); got != "StandardScaler(n_features=5)" {
		t.Errorf("unexpected String(): %s", got)
	}
}

func TestStandardScaler_NotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	_, err := scaler.Transform(testdata.ToyDesign())

	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFittedError, got %v", err)
	}
	if scaler.String() != "StandardScaler(unfitted)" {
		t.Errorf("unexpected String(): %s", scaler.String())
	}
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
		t.Error("Expected error for a single row")
	}

	if err := scaler.Fit(testdata.ToyDesign()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	_, err := scaler.Transform(mat.NewDense(3, 2, nil))
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("Expected DimensionError, got %v", err)
	}
}
