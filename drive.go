package drive

import (
	"fmt"
	"io"
	"math"

	"drive/ctrl"
	"drive/lut"
	"drive/pu"
	"drive/refs"
)

// Config 无传感器矢量控制系统配置
type Config struct {
	WRated float64          // 额定角频率(rad/s)
	IRated float64          // 额定峰值电流(A)
	URated float64          // 额定峰值电压(V)
	Pars   *ctrl.Parameters // 控制器参数
	SweepN int              // 最优轨迹扫描点数
}

// DefaultConfig 6.7 kW 同步磁阻电机驱动的默认配置
func DefaultConfig() Config {
	return Config{
		WRated: 2 * math.Pi * 105.8,
		IRated: math.Sqrt2 * 15.5,
		URated: math.Sqrt(2.0/3.0) * 370,
		Pars:   ctrl.Default7kWSyRM(),
		SweepN: 20,
	}
}

// Drive 完成配置的控制系统
// 持有基值、填充完毕的参数记录与最优轨迹求解器，
// 再经 Compose 与外部控制器组件组合为控制管线。
type Drive struct {
	Base    *pu.BaseValues
	Pars    *ctrl.Parameters
	Loci    *refs.OptimalLoci
	Datalog *ctrl.Datalog
}

// Configure 按固定顺序执行一次性配置
// 顺序: 基值计算 → MTPA/MTPV 查找表构造 → 参数记录填充。
// 任一步出错即整个配置失败，不会产出不完整的参数记录。
func Configure(cfg Config) (*Drive, error) {
	pars := cfg.Pars
	if pars == nil {
		return nil, fmt.Errorf("控制器参数缺失")
	}
	base, err := pu.New(cfg.WRated, cfg.IRated, cfg.URated, pars.Np)
	if err != nil {
		return nil, fmt.Errorf("基值计算失败: %w", err)
	}
	loci := refs.New(pars)
	mtpa, err := loci.MTPATable(2*pars.IsMax, cfg.SweepN)
	if err != nil {
		return nil, fmt.Errorf("MTPA 查找表构造失败: %w", err)
	}
	mtpv, err := loci.MTPVTable(2*pars.IsMax, cfg.SweepN)
	if err != nil {
		return nil, fmt.Errorf("MTPV 查找表构造失败: %w", err)
	}
	pars.IsdMTPA = mtpa
	pars.IsqMTPV = mtpv
	return &Drive{
		Base:    base,
		Pars:    pars,
		Loci:    loci,
		Datalog: ctrl.NewDatalog(),
	}, nil
}

// Compose 与外部控制器组件组合为每拍调用一次的控制管线
func (d *Drive) Compose(speed ctrl.SpeedCtrl, ref ctrl.CurrentRef, cc ctrl.CurrentCtrl, obs ctrl.Observer) (*ctrl.Pipeline, error) {
	return ctrl.NewPipeline(d.Pars, speed, ref, cc, obs, d.Datalog)
}

// Profiles 仿真激励曲线
// 由稀疏断点构造，供外部仿真驱动器查询。
type Profiles struct {
	SpeedRef *lut.Sequence // 速度参考(rad/s)
	TauLoad  *lut.Sequence // 外部负载转矩(N·m)
}

// DefaultProfiles 默认激励
// 速度参考按基值角频率缩放的加减速往返曲线；
// 负载转矩在 t=0.5 s 与 t=3.5 s 处阶跃（相邻重复时刻编码阶跃）。
func DefaultProfiles(base *pu.BaseValues) (*Profiles, error) {
	speedRef, err := lut.NewSequence(
		[]float64{0, .5, 1, 1.5, 2, 2.5, 3, 3.5, 4},
		scale([]float64{0, 0, 1, 1, 0, -1, -1, 0, 0}, base.W),
	)
	if err != nil {
		return nil, fmt.Errorf("速度参考曲线构造失败: %w", err)
	}
	tauLoad, err := lut.NewSequence(
		[]float64{0, .5, .5, 3.5, 3.5, 4},
		scale([]float64{0, 0, 1, 1, 0, 0}, 20.1),
	)
	if err != nil {
		return nil, fmt.Errorf("负载转矩曲线构造失败: %w", err)
	}
	return &Profiles{SpeedRef: speedRef, TauLoad: tauLoad}, nil
}

// StopTime 仿真终止时刻，取速度参考曲线的最后一个时刻
func (p *Profiles) StopTime() float64 {
	t := p.SpeedRef.Times()
	return t[len(t)-1]
}

// scale 数值序列整体缩放
func scale(values []float64, k float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = k * v
	}
	return out
}

// Report 输出控制系统配置的可读文本
func (d *Drive) Report(w io.Writer, profiles *Profiles) {
	p := d.Pars
	fmt.Fprintln(w, "无传感器矢量控制")
	fmt.Fprintln(w, "----------------")
	fmt.Fprintln(w, "采样周期:")
	fmt.Fprintf(w, "    T_s=%g\n", p.Ts)
	fmt.Fprintln(w, "电机参数估计:")
	fmt.Fprintf(w, "    p=%d  R_s=%g  L_d=%g  L_q=%g  psi_f=%g\n",
		p.Np, p.Rs, p.Ld, p.Lq, p.PsiF)
	fmt.Fprintln(w, "带宽:")
	fmt.Fprintf(w, "    alpha_c=%.1f  alpha_fw=%.1f  alpha_s=%.1f  w_o=%.1f\n",
		p.AlphaC, p.AlphaFW, p.AlphaS, p.WO)
	fmt.Fprintln(w, "限幅:")
	fmt.Fprintf(w, "    tau_M_max=%.1f  i_s_max=%.1f  i_sd_min=%.1f\n",
		p.TauMax, p.IsMax, p.IsdMin)
	fmt.Fprintln(w, "基值:")
	fmt.Fprintf(w, "    w=%.1f  i=%.1f  u=%.1f  psi=%.3f  tau=%.1f\n",
		d.Base.W, d.Base.I, d.Base.U, d.Base.Psi, d.Base.Tau)
	if profiles == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "激励曲线")
	fmt.Fprintln(w, "--------")
	fmt.Fprintln(w, "速度参考:")
	fmt.Fprintf(w, "    %s\n", profiles.SpeedRef)
	fmt.Fprintln(w, "外部负载转矩:")
	fmt.Fprintf(w, "    %s\n", profiles.TauLoad)
}
