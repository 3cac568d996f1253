package ctrl

import (
	"gonum.org/v1/gonum/mat"
)

// 记录的信号列，顺序与 Save 写入顺序一致
var datalogLabels = []string{
	"t", "w_m_ref", "w_m", "theta_m",
	"i_sd", "i_sq", "i_sd_ref", "i_sq_ref",
	"u_sd_ref", "u_sq_ref", "tau_ref", "u_dc",
}

// Datalog 运行数据记录器
// 按行主序保存每个采样周期的信号快照，供报告与曲线渲染使用。
type Datalog struct {
	Labels []string  // 信号名
	data   []float64 // 行主序数据
	rows   int       // 行数
}

// NewDatalog 初始化
func NewDatalog() *Datalog {
	return &Datalog{Labels: append([]string{}, datalogLabels...)}
}

// Save 记录一个采样周期
func (d *Datalog) Save(s Sample) {
	d.data = append(d.data,
		s.T, s.WMRef, s.WM, s.ThetaM,
		s.Is.D, s.Is.Q, s.IsRef.D, s.IsRef.Q,
		s.UsRef.D, s.UsRef.Q, s.TauRef, s.UDC,
	)
	d.rows++
}

// Len 已记录的采样周期数量
func (d *Datalog) Len() int { return d.rows }

// Matrix 以矩阵形式导出记录，每行一个采样周期，每列一个信号
func (d *Datalog) Matrix() *mat.Dense {
	if d.rows == 0 {
		return nil
	}
	return mat.NewDense(d.rows, len(d.Labels), append([]float64{}, d.data...))
}

// Column 按信号名导出一列，未知信号名返回 nil
func (d *Datalog) Column(name string) []float64 {
	col := -1
	for i, l := range d.Labels {
		if l == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	n := len(d.Labels)
	out := make([]float64, d.rows)
	for i := 0; i < d.rows; i++ {
		out[i] = d.data[i*n+col]
	}
	return out
}
