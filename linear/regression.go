package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/core/model"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// OLS は切片列を含む計画行列に対する最小二乗推定器
type OLS struct {
	model.BaseEstimator
	Coef  *mat.VecDense // 係数（先頭が切片）
	NCols int           // 計画行列の列数
}

// NewOLS は新しい推定器を作成する
func NewOLS() *OLS {
	return &OLS{}
}

// Fit はモデルを学習させる
// 正規方程式 β = (Z^T Z)^(-1) Z^T y を使用
func (m *OLS) Fit(z mat.Matrix, y *mat.VecDense) error {
	r, c := z.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OLS.Fit")
	}

	beta, err := CoefficientEstimate(z, y)
	if err != nil {
		return errors.Wrap(err, "OLS.Fit")
	}

	m.Coef = beta
	m.NCols = c
	m.SetFitted()
	return nil
}

// Predict は計画行列に対する予測値 Zβ を返す
func (m *OLS) Predict(z mat.Matrix) (*mat.VecDense, error) {
	if err := m.RequireFitted("OLS", "Predict"); err != nil {
		return nil, err
	}

	r, c := z.Dims()
	if c != m.NCols {
		return nil, errors.NewDimensionError("OLS.Predict", m.NCols, c, 1)
	}

	pred := mat.NewVecDense(r, nil)
	pred.MulVec(z, m.Coef)
	return pred, nil
}

// Coefficients は学習された係数をコピーして返す
func (m *OLS) Coefficients() []float64 {
	if m.Coef == nil {
		return nil
	}
	out := make([]float64, m.Coef.Len())
	for i := range out {
		out[i] = m.Coef.AtVec(i)
	}
	return out
}

// Score は決定係数（R²）を計算する
func (m *OLS) Score(z mat.Matrix, y *mat.VecDense) (float64, error) {
	yPred, err := m.Predict(z)
	if err != nil {
		return 0, err
	}
	if yPred.Len() != y.Len() {
		return 0, errors.NewDimensionError("OLS.Score", yPred.Len(), y.Len(), 0)
	}

	r := y.Len()
	yMean := mat.Sum(y) / float64(r)

	// 全変動 (TSS) と残差変動 (RSS) を計算
	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.AtVec(i)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPred.AtVec(i)) * (yTrue - yPred.AtVec(i))
	}

	if tss == 0 {
		return 0, errors.NewUndefinedMetricError("R2", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}
