package ctrl

import (
	"fmt"
	"math"

	"drive/lut"
)

// Parameters 无传感器矢量控制系统参数
// 配置阶段一次性填充，装配完成后各控制器视为只读。
// IsdMTPA 与 IsqMTPV 两张查找表由最优轨迹求解器在装配阶段填充。
type Parameters struct {
	Ts float64 // 采样周期(s)

	// 带宽
	AlphaC  float64 // 电流环带宽(rad/s)
	AlphaFW float64 // 弱磁带宽(rad/s)
	AlphaS  float64 // 速度环带宽(rad/s)

	// 观测器
	WO float64 // 观测器带宽(rad/s)

	// 限幅
	TauMax float64 // 最大转矩(N·m)
	IsMax  float64 // 最大定子电流(A)
	IsdMin float64 // 最小 d 轴电流(A)

	// 额定值
	UdcNom float64 // 额定直流母线电压(V)
	WNom   float64 // 额定角速度(rad/s)

	// 电机参数估计值
	Rs   float64 // 定子电阻(Ω)
	Ld   float64 // d 轴电感(H)
	Lq   float64 // q 轴电感(H)
	PsiF float64 // 永磁磁链(Vs)
	Np   int     // 极对数
	J    float64 // 转动惯量(kg·m²)

	// 由最优轨迹求解器填充
	IsdMTPA *lut.LUT // 转矩 → d 轴电流
	IsqMTPV *lut.LUT // d 轴电流幅值 → q 轴电流(弱磁区)
}

// Default7kWSyRM 6.7 kW 同步磁阻电机驱动的默认参数
func Default7kWSyRM() *Parameters {
	return &Parameters{
		Ts:      250e-6,
		AlphaC:  2 * math.Pi * 100,
		AlphaFW: 2 * math.Pi * 20,
		AlphaS:  2 * math.Pi * 4,
		WO:      2 * math.Pi * 40,
		TauMax:  2 * 20.1,
		IsMax:   2 * math.Sqrt2 * 15.5,
		IsdMin:  .25 * math.Sqrt2 * 15.5,
		UdcNom:  540,
		WNom:    2 * math.Pi * 105.8,
		Rs:      0.54,
		Ld:      41.5e-3,
		Lq:      6.2e-3,
		PsiF:    0,
		Np:      2,
		J:       .015,
	}
}

// Validate 装配前的完整性检查
// 任一缺失或非法项都会使整个配置步骤失败。
func (p *Parameters) Validate() error {
	if p.Ts <= 0 {
		return fmt.Errorf("采样周期必须为正: T_s=%g", p.Ts)
	}
	if p.Np <= 0 {
		return fmt.Errorf("极对数必须为正: p=%d", p.Np)
	}
	if p.Ld <= 0 || p.Lq <= 0 {
		return fmt.Errorf("电感估计值必须为正: L_d=%g L_q=%g", p.Ld, p.Lq)
	}
	if p.IsMax <= 0 {
		return fmt.Errorf("最大定子电流必须为正: i_s_max=%g", p.IsMax)
	}
	if p.IsdMTPA == nil || p.IsqMTPV == nil {
		return fmt.Errorf("最优轨迹查找表尚未填充")
	}
	return nil
}
