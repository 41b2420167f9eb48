// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 回帰モデル選択で発生する数値的な失敗（特異行列、自由度の不足、対数の未定義など）を
// 構造化されたエラーとして呼び出し元に返します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("stepreg-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// MissingValueWarning は欠損値センチネルを含む行を検出した場合の警告です。
type MissingValueWarning struct {
	Sentinel float64
	Rows     int
	Action   string // "dropped" または "kept"
}

func (w *MissingValueWarning) Error() string {
	return fmt.Sprintf("%d rows contain the missing-value sentinel %g and were %s", w.Rows, w.Sentinel, w.Action)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *MissingValueWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("sentinel", w.Sentinel).
		Int("rows", w.Rows).
		Str("action", w.Action).
		Str("type", "MissingValueWarning")
}

// NewMissingValueWarning は新しいMissingValueWarningを作成します。
func NewMissingValueWarning(sentinel float64, rows int, action string) *MissingValueWarning {
	return &MissingValueWarning{Sentinel: sentinel, Rows: rows, Action: action}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// SingularMatrixError はグラム行列 Z^T Z が逆行列を持たない場合のエラーです。
// 列が線形従属であるか、観測数が列数以下の場合に発生します。
type SingularMatrixError struct {
	Op   string
	Rows int
	Cols int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("stepreg: %s: gram matrix of %dx%d design is not invertible", e.Op, e.Rows, e.Cols)
}

// Unwrap は ErrSingularMatrix を返し、errors.Is による判定を可能にします。
func (e *SingularMatrixError) Unwrap() error {
	return ErrSingularMatrix
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op string, rows, cols int) error {
	return errors.WithStack(&SingularMatrixError{Op: op, Rows: rows, Cols: cols})
}

// DegreesOfFreedomKind は自由度エラーの種類です。
type DegreesOfFreedomKind int

const (
	// InvalidDegreesOfFreedom はF検定の df1 または df2 が正でない場合です。
	InvalidDegreesOfFreedom DegreesOfFreedomKind = iota
	// DegenerateDegreesOfFreedom は自由度調整済みR²の分母 n-p-1 が正でない場合です。
	DegenerateDegreesOfFreedom
)

func (k DegreesOfFreedomKind) String() string {
	switch k {
	case InvalidDegreesOfFreedom:
		return "InvalidDegreesOfFreedom"
	case DegenerateDegreesOfFreedom:
		return "DegenerateDegreesOfFreedom"
	default:
		return "UnknownDegreesOfFreedom"
	}
}

// DegreesOfFreedomError は自由度が統計量の計算に不十分な場合のエラーです。
type DegreesOfFreedomError struct {
	Op   string
	Kind DegreesOfFreedomKind
	DF1  int
	DF2  int
}

func (e *DegreesOfFreedomError) Error() string {
	return fmt.Sprintf("stepreg: %s: %s (df1=%d, df2=%d)", e.Op, e.Kind, e.DF1, e.DF2)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DegreesOfFreedomError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind.String()).
		Int("df1", e.DF1).
		Int("df2", e.DF2).
		Str("type", "DegreesOfFreedomError")
}

// NewDegreesOfFreedomError は新しいDegreesOfFreedomErrorを作成し、スタックトレースを付与します。
func NewDegreesOfFreedomError(op string, kind DegreesOfFreedomKind, df1, df2 int) error {
	return errors.WithStack(&DegreesOfFreedomError{Op: op, Kind: kind, DF1: df1, DF2: df2})
}

// UndefinedLogarithmError は正でない値の対数を求めようとした場合のエラーです。
// AIC の残差平方和が 0 以下のときに発生します。
type UndefinedLogarithmError struct {
	Op    string
	Value float64
}

func (e *UndefinedLogarithmError) Error() string {
	return fmt.Sprintf("stepreg: %s: logarithm of non-positive value %g", e.Op, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UndefinedLogarithmError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Float64("value", e.Value).
		Str("type", "UndefinedLogarithmError")
}

// NewUndefinedLogarithmError は新しいUndefinedLogarithmErrorを作成し、スタックトレースを付与します。
func NewUndefinedLogarithmError(op string, value float64) error {
	return errors.WithStack(&UndefinedLogarithmError{Op: op, Value: value})
}

// UndefinedMetricError は評価指標が定義されない場合のエラーです。
// 例えば、応答変数が定数で全平方和が 0 のときの R² など。
type UndefinedMetricError struct {
	Metric    string
	Condition string
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("stepreg: '%s' is undefined: %s", e.Metric, e.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UndefinedMetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Metric).
		Str("condition", e.Condition).
		Str("type", "UndefinedMetricError")
}

// NewUndefinedMetricError は新しいUndefinedMetricErrorを作成し、スタックトレースを付与します。
func NewUndefinedMetricError(metric, condition string) error {
	return errors.WithStack(&UndefinedMetricError{Metric: metric, Condition: condition})
}

// NotFittedError はモデルが未学習の状態で Predict などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("stepreg: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("stepreg: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("stepreg: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("stepreg: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")

	// ErrExhaustedCandidatePool は有意な初期説明変数が一つも見つからなかった場合のエラーです。
	ErrExhaustedCandidatePool = New("exhausted candidate pool")

	// ErrNonTermination はステップワイズ選択が上限ラウンド数内に終了しなかった場合のエラーです。
	ErrNonTermination = New("stepwise selection did not terminate")
)
