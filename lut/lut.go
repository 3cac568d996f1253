package lut

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBadTable 自变量与因变量长度不一致或为空
	ErrBadTable = errors.New("lut: x and y must have the same non-zero length")
	// ErrNotSorted 自变量必须非递减
	ErrNotSorted = errors.New("lut: x must be non-decreasing")
)

// LUT 分段线性查找表
// 自变量非递减，相邻两个相等的自变量编码一次阶跃。
// 构造完成后不再持有可变状态，求值是查询点的纯函数。
type LUT struct {
	X []float64 // 自变量
	Y []float64 // 因变量
}

// New 由等长的自变量与因变量序列构造查找表。
// 输入序列被复制，调用方之后可以安全复用底层切片。
func New(x, y []float64) (*LUT, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, ErrBadTable
	}
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			return nil, ErrNotSorted
		}
	}
	return &LUT{
		X: append([]float64{}, x...),
		Y: append([]float64{}, y...),
	}, nil
}

// Eval 在查询点处线性插值。
// 边界策略: 低于首个自变量或高于末个自变量的查询钳位到端点值，
// 越界查询不是错误。落在相等自变量（阶跃）上的查询取右极限，
// 即返回后一个表项的值（该值自此刻起生效）。
func (t *LUT) Eval(q float64) float64 {
	n := len(t.X)
	// 首个大于 q 的下标
	i := sort.Search(n, func(k int) bool { return t.X[k] > q })
	if i == 0 {
		return t.Y[0]
	}
	if i == n {
		return t.Y[n-1]
	}
	j := i - 1
	if t.X[j] == q {
		// j 是最后一个等于 q 的下标，阶跃处取右极限
		return t.Y[j]
	}
	r := (q - t.X[j]) / (t.X[i] - t.X[j])
	return t.Y[j] + r*(t.Y[i]-t.Y[j])
}

// EvalSlice 对一组查询点逐个求值
func (t *LUT) EvalSlice(qs []float64) []float64 {
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = t.Eval(q)
	}
	return out
}

// Sequence 时间序列
// 形状与查找表相同，自变量为时刻(s)，插值约定与 LUT 完全一致。
type Sequence struct {
	LUT
}

// NewSequence 由时刻与数值序列构造时间序列
func NewSequence(times, values []float64) (*Sequence, error) {
	t, err := New(times, values)
	if err != nil {
		return nil, err
	}
	return &Sequence{LUT: *t}, nil
}

// Times 时刻序列
func (s *Sequence) Times() []float64 { return s.X }

// Values 数值序列
func (s *Sequence) Values() []float64 { return s.Y }

// String 报告用的可读形式
func (s *Sequence) String() string {
	var b strings.Builder
	b.WriteString("t=[")
	for i, v := range s.X {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%.1f", v)
	}
	b.WriteString("] y=[")
	for i, v := range s.Y {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%.1f", v)
	}
	b.WriteString("]")
	return b.String()
}
