package ctrl

import (
	"strings"
	"testing"

	"drive/lut"
	"drive/maths"
)

// 记录调用顺序的桩组件
type trace struct{ calls []string }

func (tr *trace) add(s string) { tr.calls = append(tr.calls, s) }

type stubSpeed struct {
	tr *trace
	ts float64
}

func (s *stubSpeed) Ts() float64 { return s.ts }
func (s *stubSpeed) Output(wMRef, wM float64) float64 {
	s.tr.add("speed.output")
	return wMRef - wM
}
func (s *stubSpeed) Update(tauLim float64) { s.tr.add("speed.update") }

type stubRef struct {
	tr *trace
	ts float64
}

func (s *stubRef) Ts() float64 { return s.ts }
func (s *stubRef) Output(tauRef, wM, uDC float64) (maths.Phasor, float64) {
	s.tr.add("ref.output")
	return maths.Phasor{Q: tauRef}, tauRef
}
func (s *stubRef) Update(usRef maths.Phasor, uDC float64) { s.tr.add("ref.update") }

type stubCC struct {
	tr *trace
	ts float64
}

func (s *stubCC) Ts() float64 { return s.ts }
func (s *stubCC) Output(isRef, is maths.Phasor, wM float64) maths.Phasor {
	s.tr.add("cc.output")
	return isRef.Sub(is)
}
func (s *stubCC) Update(usRef maths.Phasor, wM float64) { s.tr.add("cc.update") }

type stubObs struct {
	tr *trace
	ts float64
	w  float64
}

func (s *stubObs) Ts() float64    { return s.ts }
func (s *stubObs) Speed() float64 { s.tr.add("obs.speed"); return s.w }
func (s *stubObs) Angle() float64 { return 0 }
func (s *stubObs) Update(usRef, is maths.Phasor) {
	s.tr.add("obs.update")
	s.w = usRef.Q // 下一拍才可见
}

type stubLog struct{ tr *trace }

func (s *stubLog) Save(Sample) { s.tr.add("datalog.save") }

// 填充两张空表使参数校验通过
func testParameters(t *testing.T) *Parameters {
	t.Helper()
	pars := Default7kWSyRM()
	tab, err := lut.New([]float64{0, 1}, []float64{0, 1})
	if err != nil {
		t.Fatalf("lut.New failed: %v", err)
	}
	pars.IsdMTPA = tab
	pars.IsqMTPV = tab
	return pars
}

func testComponents(pars *Parameters, tr *trace) (*stubSpeed, *stubRef, *stubCC, *stubObs, *stubLog) {
	return &stubSpeed{tr: tr, ts: pars.Ts},
		&stubRef{tr: tr, ts: pars.Ts},
		&stubCC{tr: tr, ts: pars.Ts},
		&stubObs{tr: tr, ts: pars.Ts},
		&stubLog{tr: tr}
}

// TestPipelineOrder 单拍内的因果顺序:
// 观测器上一拍状态 → 速度环 → 电流参考 → 电流环 → 记录 → 状态更新(观测器最后)。
func TestPipelineOrder(t *testing.T) {
	pars := testParameters(t)
	tr := &trace{}
	speed, ref, cc, obs, log := testComponents(pars, tr)
	p, err := NewPipeline(pars, speed, ref, cc, obs, log)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	p.Step(1, maths.Phasor{}, 540)
	want := "obs.speed speed.output ref.output cc.output datalog.save speed.update ref.update cc.update obs.update"
	if got := strings.Join(tr.calls, " "); got != want {
		t.Errorf("调用顺序 = %q, want %q", got, want)
	}
}

// TestPipelineObserverFeedback 观测器只反馈上一拍，不泄漏本拍输出。
func TestPipelineObserverFeedback(t *testing.T) {
	pars := testParameters(t)
	tr := &trace{}
	speed, ref, cc, obs, log := testComponents(pars, tr)
	p, err := NewPipeline(pars, speed, ref, cc, obs, log)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	// 第一拍: 观测器尚无任何估计
	us1 := p.Step(10, maths.Phasor{}, 540)
	// 第二拍: 桩观测器返回第一拍的电压参考 q 分量
	if got := obs.Speed(); got != us1.Q {
		t.Errorf("第二拍观测器估计 = %v, want %v", got, us1.Q)
	}
}

// TestPipelineTime 累计时间按采样周期推进。
func TestPipelineTime(t *testing.T) {
	pars := testParameters(t)
	tr := &trace{}
	speed, ref, cc, obs, log := testComponents(pars, tr)
	p, err := NewPipeline(pars, speed, ref, cc, obs, log)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	p.Step(0, maths.Phasor{}, 540)
	p.Step(0, maths.Phasor{}, 540)
	if got := p.Time(); got != 2*pars.Ts {
		t.Errorf("Time = %v, want %v", got, 2*pars.Ts)
	}
}

// TestPipelineTsMismatch 组件采样周期不一致时装配失败。
func TestPipelineTsMismatch(t *testing.T) {
	pars := testParameters(t)
	tr := &trace{}
	speed, ref, cc, obs, log := testComponents(pars, tr)
	obs.ts = pars.Ts * 2
	if _, err := NewPipeline(pars, speed, ref, cc, obs, log); err == nil {
		t.Fatalf("NewPipeline accepted a mismatched sampling period")
	}
}

// TestPipelineIncompleteParams 查找表未填充时装配失败。
func TestPipelineIncompleteParams(t *testing.T) {
	pars := Default7kWSyRM()
	tr := &trace{}
	speed, ref, cc, obs, log := testComponents(pars, tr)
	if _, err := NewPipeline(pars, speed, ref, cc, obs, log); err == nil {
		t.Fatalf("NewPipeline accepted parameters without lookup tables")
	}
}

// TestPipelineNilComponent 缺失组件时装配失败。
func TestPipelineNilComponent(t *testing.T) {
	pars := testParameters(t)
	tr := &trace{}
	speed, ref, cc, _, log := testComponents(pars, tr)
	if _, err := NewPipeline(pars, speed, ref, cc, nil, log); err == nil {
		t.Fatalf("NewPipeline accepted a nil observer")
	}
}
