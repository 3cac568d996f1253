package maths

import "math"

// Phasor 空间矢量（d-q 同步旋转坐标系下的相量）
// 实部对应 d 轴分量，虚部对应 q 轴分量。所有运算均为纯函数。
type Phasor struct {
	D float64 // d 轴分量
	Q float64 // q 轴分量
}

// FromPolar 由幅值与相角构造相量
func FromPolar(abs, angle float64) Phasor {
	return Phasor{D: abs * math.Cos(angle), Q: abs * math.Sin(angle)}
}

// Abs 相量幅值
func (p Phasor) Abs() float64 { return math.Hypot(p.D, p.Q) }

// Angle 相角(rad)，以 d 轴为基准
func (p Phasor) Angle() float64 { return math.Atan2(p.Q, p.D) }

// Add 相量加法
func (p Phasor) Add(o Phasor) Phasor { return Phasor{D: p.D + o.D, Q: p.Q + o.Q} }

// Sub 相量减法
func (p Phasor) Sub(o Phasor) Phasor { return Phasor{D: p.D - o.D, Q: p.Q - o.Q} }

// Scale 标量缩放
func (p Phasor) Scale(k float64) Phasor { return Phasor{D: k * p.D, Q: k * p.Q} }

// MulJ 乘以虚数单位 j（逆时针旋转 90°）
func (p Phasor) MulJ() Phasor { return Phasor{D: -p.Q, Q: p.D} }

// Conj 共轭
func (p Phasor) Conj() Phasor { return Phasor{D: p.D, Q: -p.Q} }

// Rotate 旋转指定角度（坐标系变换）
func (p Phasor) Rotate(angle float64) Phasor {
	c, s := math.Cos(angle), math.Sin(angle)
	return Phasor{D: c*p.D - s*p.Q, Q: s*p.D + c*p.Q}
}
