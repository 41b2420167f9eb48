// Package preprocessing holds column transforms applied before refitting the
// selected model.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/stepreg/core/model"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// 標準偏差がこの値未満の列は定数列とみなす
const constantTolerance = 1e-8

// StandardScaler はデータを平均0、標準偏差1に変換する
//
// 定数列（切片列を含む）は変換せずにそのまま通す。計画行列に
// そのまま適用しても切片列が 0 列にならない。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各列の平均値（定数列は 0）
	Mean []float64

	// Scale は各列の標本標準偏差（定数列は 1）
	Scale []float64

	// NFeatures は列の数
	NFeatures int
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	zScaled, err := scaler.FitTransform(z)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は各列の平均と標準偏差を計算する
func (s *StandardScaler) Fit(x mat.Matrix) error {
	r, c := x.Dims()
	if r < 2 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		mean, variance := stat.MeanVariance(col, nil)
		std := math.Sqrt(variance)

		if std < constantTolerance {
			// 定数列はそのまま
			s.Mean[j], s.Scale[j] = 0, 1
			continue
		}
		s.Mean[j], s.Scale[j] = mean, std
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := x.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, x)
	return result, nil
}

// FitTransform は学習と変換を続けて行う
func (s *StandardScaler) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// String returns a short description of the fitted state.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler(unfitted)"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures)
}
