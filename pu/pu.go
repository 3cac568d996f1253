package pu

import "errors"

// ErrInvalidParameter 额定量必须为正
var ErrInvalidParameter = errors.New("rated quantity must be positive")

// BaseValues 由额定值计算得到的基值
// 仅用于结果的标幺化绘图与报告，控制运算本身不使用基值。
type BaseValues struct {
	W   float64 // 额定角频率(rad/s)
	I   float64 // 额定峰值电流(A)
	U   float64 // 额定峰值电压(V)
	Np  int     // 极对数
	Psi float64 // 磁链基值(Vs)
	P   float64 // 功率基值(W)
	Z   float64 // 阻抗基值(Ω)
	L   float64 // 电感基值(H)
	Tau float64 // 转矩基值(N·m)
}

// New 由额定角频率、额定峰值电流、额定峰值电压与极对数计算基值。
// 所有输入必须为正，否则返回 ErrInvalidParameter。
func New(w, i, u float64, np int) (*BaseValues, error) {
	if w <= 0 || i <= 0 || u <= 0 || np <= 0 {
		return nil, ErrInvalidParameter
	}
	b := &BaseValues{
		W:  w,
		I:  i,
		U:  u,
		Np: np,
	}
	b.Psi = u / w
	b.P = 1.5 * u * i
	b.Z = u / i
	b.L = b.Z / w
	b.Tau = float64(np) * b.P / w
	return b, nil
}
