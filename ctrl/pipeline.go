package ctrl

import (
	"fmt"

	"drive/maths"
)

// SpeedCtrl 速度控制器装配契约
// 内部控制律由外部实现提供，这里只约束每拍的调用形状。
type SpeedCtrl interface {
	Ts() float64
	// Output 由速度参考与转速估计得到转矩参考
	Output(wMRef, wM float64) float64
	// Update 用限幅后的转矩回馈更新内部状态（抗饱和）
	Update(tauLim float64)
}

// CurrentRef 电流参考生成器装配契约
// 运行时通过 Parameters 中的两张查找表把转矩参考映射为电流参考。
type CurrentRef interface {
	Ts() float64
	// Output 由转矩参考、转速估计与母线电压得到电流参考及限幅后的转矩
	Output(tauRef, wM, uDC float64) (isRef maths.Phasor, tauLim float64)
	// Update 用电压参考与母线电压更新弱磁状态
	Update(usRef maths.Phasor, uDC float64)
}

// CurrentCtrl 电流控制器装配契约
type CurrentCtrl interface {
	Ts() float64
	// Output 由电流参考与电流测量得到电压参考
	Output(isRef, is maths.Phasor, wM float64) maths.Phasor
	// Update 用本拍输出更新内部状态
	Update(usRef maths.Phasor, wM float64)
}

// Observer 无传感器磁链/转速观测器装配契约
// Speed 与 Angle 返回上一拍 Update 之后的估计值，
// 本拍的测量只通过 Update 进入观测器。
type Observer interface {
	Ts() float64
	Speed() float64
	Angle() float64
	Update(usRef, is maths.Phasor)
}

// Datalogger 数据记录器装配契约
type Datalogger interface {
	Save(Sample)
}

// Sample 单个采样周期的记录
type Sample struct {
	T      float64      // 时刻(s)
	WMRef  float64      // 速度参考(rad/s)
	WM     float64      // 转速估计(rad/s)
	ThetaM float64      // 磁链角估计(rad)
	Is     maths.Phasor // 电流测量(A)
	IsRef  maths.Phasor // 电流参考(A)
	UsRef  maths.Phasor // 电压参考(V)
	TauRef float64      // 限幅后转矩参考(N·m)
	UDC    float64      // 母线电压(V)
}

// Pipeline 控制管线
// 把速度环、电流参考生成、电流环、观测器与数据记录组合成
// 每个采样周期被外部驱动器调用一次的整体。组合器本身不做
// 数值计算，只保证各组件按因果顺序执行。
type Pipeline struct {
	Pars *Parameters

	speed SpeedCtrl
	ref   CurrentRef
	cc    CurrentCtrl
	obs   Observer
	log   Datalogger

	t float64 // 累计时间(s)
}

// NewPipeline 组合控制管线
// 校验参数记录完整且所有组件采样周期一致，任一不满足即装配失败。
func NewPipeline(pars *Parameters, speed SpeedCtrl, ref CurrentRef, cc CurrentCtrl, obs Observer, log Datalogger) (*Pipeline, error) {
	if err := pars.Validate(); err != nil {
		return nil, fmt.Errorf("参数校验失败: %w", err)
	}
	if speed == nil || ref == nil || cc == nil || obs == nil || log == nil {
		return nil, fmt.Errorf("控制组件不完整")
	}
	checks := []struct {
		name string
		ts   float64
	}{
		{"速度控制器", speed.Ts()},
		{"电流参考", ref.Ts()},
		{"电流控制器", cc.Ts()},
		{"观测器", obs.Ts()},
	}
	for _, c := range checks {
		if c.ts != pars.Ts {
			return nil, fmt.Errorf("%s采样周期不一致: %g != %g", c.name, c.ts, pars.Ts)
		}
	}
	return &Pipeline{
		Pars:  pars,
		speed: speed,
		ref:   ref,
		cc:    cc,
		obs:   obs,
		log:   log,
	}, nil
}

// Step 执行一个采样周期，返回给调制器的电压参考
// 顺序: 读取观测器上一拍估计 → 速度环 → 电流参考 → 电流环 →
// 记录 → 各组件状态更新，观测器最后（本拍测量只作为其反馈输入）。
func (p *Pipeline) Step(wMRef float64, is maths.Phasor, uDC float64) maths.Phasor {
	wM := p.obs.Speed()
	thetaM := p.obs.Angle()

	tauRef := p.speed.Output(wMRef, wM)
	isRef, tauLim := p.ref.Output(tauRef, wM, uDC)
	usRef := p.cc.Output(isRef, is, wM)

	p.log.Save(Sample{
		T:      p.t,
		WMRef:  wMRef,
		WM:     wM,
		ThetaM: thetaM,
		Is:     is,
		IsRef:  isRef,
		UsRef:  usRef,
		TauRef: tauLim,
		UDC:    uDC,
	})

	p.speed.Update(tauLim)
	p.ref.Update(usRef, uDC)
	p.cc.Update(usRef, wM)
	p.obs.Update(usRef, is)

	p.t += p.Pars.Ts
	return usRef
}

// Time 当前累计时间(s)
func (p *Pipeline) Time() float64 { return p.t }
