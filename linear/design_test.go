package linear

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/internal/testdata"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

func TestNewDesign(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		4, 5,
		6, 7,
		8, 9,
	})
	z := NewDesign(x)

	want := mat.NewDense(3, 3, []float64{
		1, 4, 5,
		1, 6, 7,
		1, 8, 9,
	})
	if !mat.Equal(z, want) {
		t.Errorf("Unexpected design:\n%v", mat.Formatted(z))
	}
	if err := ValidateDesign(mat.NewDense(4, 3, []float64{1, 1, 2, 1, 2, 1, 1, 3, 5, 1, 4, 4})); err != nil {
		t.Errorf("Expected valid design, got %v", err)
	}
}

func TestSelectColumns(t *testing.T) {
	z := testdata.ToyDesign()

	sub, err := SelectColumns(z, []int{0, 3})
	if err != nil {
		t.Fatalf("SelectColumns failed: %v", err)
	}
	r, c := sub.Dims()
	if r != 7 || c != 2 {
		t.Fatalf("Expected 7x2, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		if sub.At(i, 1) != z.At(i, 3) {
			t.Errorf("Row %d: expected %g, got %g", i, z.At(i, 3), sub.At(i, 1))
		}
	}

	// 元の行列と共有しない
	sub.Set(0, 1, -100)
	if z.At(0, 3) == -100 {
		t.Error("SelectColumns result aliases the source matrix")
	}

	tests := []struct {
		name string
		cols []int
	}{
		{"empty", nil},
		{"out of range", []int{0, 5}},
		{"negative", []int{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelectColumns(z, tt.cols); err == nil {
				t.Errorf("Expected error for columns %v", tt.cols)
			}
		})
	}
}

func TestWithIntercept(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{nil, []int{0}},
		{[]int{3, 1}, []int{0, 3, 1}},
		{[]int{0, 2, 2, 4}, []int{0, 2, 4}},
	}
	for _, tt := range tests {
		got := WithIntercept(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("WithIntercept(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateDesign(t *testing.T) {
	tests := []struct {
		name    string
		z       *mat.Dense
		wantErr bool
	}{
		{
			name:    "toy",
			z:       testdata.ToyDesign(),
			wantErr: false,
		},
		{
			name:    "missing intercept",
			z:       mat.NewDense(4, 2, []float64{2, 1, 1, 2, 1, 3, 1, 4}),
			wantErr: true,
		},
		{
			name:    "duplicate columns",
			z:       mat.NewDense(4, 3, []float64{1, 1, 1, 1, 2, 2, 1, 3, 3, 1, 4, 4}),
			wantErr: true,
		},
		{
			name:    "too few rows",
			z:       mat.NewDense(2, 2, []float64{1, 1, 1, 2}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDesign(tt.z)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDesign() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *errors.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("Expected ValidationError, got %T", err)
				}
			}
		})
	}
}
