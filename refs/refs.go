package refs

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"drive/ctrl"
	"drive/lut"
	"drive/maths"
)

var (
	// ErrInvalidSweep 扫描上界必须为正
	ErrInvalidSweep = errors.New("refs: sweep range must be positive")
	// ErrDegenerateMachine 零凸极使 MTPA 闭式解不再唯一。
	// 求解器内部回退为纯 q 轴解，该错误不会向调用方传播。
	ErrDegenerateMachine = errors.New("refs: zero saliency, mtpa angle degenerates to the q axis")
)

// 默认扫描点数
const defaultN = 20

// OptimalLoci 最优电流轨迹求解器
// 由电机参数估计值计算 MTPA 与 MTPV 轨迹，并为电流参考生成器
// 构造两张运行时查找表。所有求值均为纯函数，结果可复现。
type OptimalLoci struct {
	pars *ctrl.Parameters
}

// New 构造求解器，参数记录在装配完成前保持可写
func New(pars *ctrl.Parameters) *OptimalLoci {
	return &OptimalLoci{pars: pars}
}

// Torque 电磁转矩
//
//	τ = p·(ψ_f·i_sq + (L_d−L_q)·i_sd·i_sq)
func (o *OptimalLoci) Torque(is maths.Phasor) float64 {
	p := o.pars
	return float64(p.Np) * (p.PsiF*is.Q + (p.Ld-p.Lq)*is.D*is.Q)
}

// TorqueSlice 对轨迹上每个相量求转矩
func (o *OptimalLoci) TorqueSlice(is []maths.Phasor) []float64 {
	tau := make([]float64, len(is))
	for i, v := range is {
		tau[i] = o.Torque(v)
	}
	return tau
}

// optAngleCos 一阶最优条件 2x·c² + k·c − x = 0 的余弦根。
// MTPA 取 k=ψ_f、x=ΔL·i；MTPV 在磁链坐标下取 k=ψ_f·L_q、x=ΔL·ψ。
// 两种情形共用同一个二次方程，取使转矩为正的根。
// x==0 时闭式解退化，此时回退为 c=0（纯 q 轴）。
func optAngleCos(k, x float64) (float64, error) {
	if x == 0 {
		return 0, ErrDegenerateMachine
	}
	return (-k + math.Sqrt(k*k+8*x*x)) / (4 * x), nil
}

// MTPA 最大转矩电流比轨迹
// 对电流幅值从 0 到 isMax 的扫描，逐点求使转矩最大的相角。
// 凸极(L_d≠L_q)情形有闭式角度解；零凸极情形唯一最优角不存在，
// 逐点回退为纯 q 轴电流而不是产出 NaN。
func (o *OptimalLoci) MTPA(isMax float64, n int) ([]maths.Phasor, error) {
	if isMax <= 0 {
		return nil, ErrInvalidSweep
	}
	if n < 2 {
		n = defaultN
	}
	dL := o.pars.Ld - o.pars.Lq
	mag := floats.Span(make([]float64, n), 0, isMax)
	locus := make([]maths.Phasor, n)
	for i, m := range mag {
		c, err := optAngleCos(o.pars.PsiF, dL*m)
		if errors.Is(err, ErrDegenerateMachine) {
			c = 0
		}
		s := math.Sqrt(1 - c*c)
		locus[i] = maths.Phasor{D: m * c, Q: m * s}
	}
	return locus, nil
}

// MTPATable 构造转矩 → d 轴电流查找表
// 表域取转矩严格递增的前缀；超过最优点之后的扫描尾段被截断，
// 使表的转矩定义域保持单调。
func (o *OptimalLoci) MTPATable(isMax float64, n int) (*lut.LUT, error) {
	locus, err := o.MTPA(isMax, n)
	if err != nil {
		return nil, err
	}
	tau := o.TorqueSlice(locus)
	m := monotoneBound(tau)
	isd := make([]float64, m)
	for i := 0; i < m; i++ {
		isd[i] = locus[i].D
	}
	return lut.New(tau[:m], isd)
}

// MTPV 最大转矩电压比轨迹（弱磁区）
// 在定子磁链坐标下逐点求电压椭圆约束上的最优相量。
// 磁链幅值扫描上界取 L_d·isMax，对应调用侧沿用的 2·i_s_max 约定。
func (o *OptimalLoci) MTPV(isMax float64, n int) ([]maths.Phasor, error) {
	if isMax <= 0 {
		return nil, ErrInvalidSweep
	}
	if n < 2 {
		n = defaultN
	}
	p := o.pars
	dL := p.Ld - p.Lq
	psi := floats.Span(make([]float64, n), 0, p.Ld*isMax)
	locus := make([]maths.Phasor, n)
	for i, f := range psi {
		c, err := optAngleCos(p.PsiF*p.Lq, dL*f)
		if errors.Is(err, ErrDegenerateMachine) {
			c = 0
		}
		s := math.Sqrt(1 - c*c)
		// 磁链分量换算回电流分量
		psiD, psiQ := f*c, f*s
		locus[i] = maths.Phasor{
			D: (psiD - p.PsiF) / p.Ld,
			Q: psiQ / p.Lq,
		}
	}
	return locus, nil
}

// MTPVTable 构造 d 轴电流幅值 → q 轴电流查找表
// 仅在电压受限（弱磁）运行区有效。自变量取 |i_sd| 的严格递增前缀。
func (o *OptimalLoci) MTPVTable(isMax float64, n int) (*lut.LUT, error) {
	locus, err := o.MTPV(isMax, n)
	if err != nil {
		return nil, err
	}
	isd := make([]float64, len(locus))
	isq := make([]float64, len(locus))
	for i, v := range locus {
		isd[i] = math.Abs(v.D)
		isq[i] = v.Q
	}
	m := monotoneBound(isd)
	return lut.New(isd[:m], isq[:m])
}

// monotoneBound 返回严格递增前缀的长度
func monotoneBound(v []float64) int {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return i
		}
	}
	return len(v)
}
