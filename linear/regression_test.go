package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/internal/testdata"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

func TestOLS_Basic(t *testing.T) {
	// Test basic linear regression y = 2x + 1
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})
	z := NewDesign(x)

	m := NewOLS()
	if err := m.Fit(z, y); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	coef := m.Coefficients()
	if math.Abs(coef[0]-1) > 0.01 {
		t.Errorf("Expected intercept ~1.0, got %f", coef[0])
	}
	if math.Abs(coef[1]-2) > 0.01 {
		t.Errorf("Expected coefficient ~2.0, got %f", coef[1])
	}

	pred, err := m.Predict(NewDesign(mat.NewDense(2, 1, []float64{5, 6})))
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	expected := []float64{11, 13}
	for i := range expected {
		if math.Abs(pred.AtVec(i)-expected[i]) > 0.01 {
			t.Errorf("Expected prediction %f, got %f", expected[i], pred.AtVec(i))
		}
	}

	score, err := m.Score(z, y)
	if err != nil {
		t.Fatalf("Failed to score: %v", err)
	}
	if math.Abs(score-1) > 1e-9 {
		t.Errorf("Expected R² 1 for exact fit, got %f", score)
	}
}

func TestOLS_ScoreMatchesDecomposition(t *testing.T) {
	z := testdata.ToyDesign()
	y := testdata.ToyResponse()

	m := NewOLS()
	if err := m.Fit(z, y); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	score, err := m.Score(z, y)
	if err != nil {
		t.Fatalf("Failed to score: %v", err)
	}

	ss, err := Decompose(z, y)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if want := ss.Regression / ss.Total; math.Abs(score-want) > 1e-9 {
		t.Errorf("Expected R² %f, got %f", want, score)
	}
}

func TestOLS_NotFitted(t *testing.T) {
	m := NewOLS()
	_, err := m.Predict(testdata.ToyDesign())

	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFittedError, got %v", err)
	}
	if m.Coefficients() != nil {
		t.Error("Expected nil coefficients before Fit")
	}
}

func TestOLS_PredictColumnMismatch(t *testing.T) {
	m := NewOLS()
	if err := m.Fit(testdata.ToyDesign(), testdata.ToyResponse()); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	_, err := m.Predict(mat.NewDense(2, 3, nil))
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("Expected DimensionError, got %v", err)
	}
}

func TestOLS_ConstantResponse(t *testing.T) {
	z := testdata.ToyDesign()
	y := mat.NewVecDense(7, []float64{5, 5, 5, 5, 5, 5, 5})

	m := NewOLS()
	if err := m.Fit(z, y); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	_, err := m.Score(z, y)
	var ue *errors.UndefinedMetricError
	if !errors.As(err, &ue) {
		t.Errorf("Expected UndefinedMetricError, got %v", err)
	}
}
