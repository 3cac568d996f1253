package ctrl

import (
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// newLine 统一风格的曲线图
func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	return line
}

// addSeries 把若干信号列加入曲线图
func (d *Datalog) addSeries(line *charts.Line, names ...string) {
	line.SetXAxis(d.Column("t"))
	series := make([]charts.SingleSeries, 0, len(names))
	for _, name := range names {
		col := d.Column(name)
		items := make([]opts.LineData, len(col))
		for i, v := range col {
			items[i].Value = v
		}
		s := charts.SingleSeries{
			Name: name,
			Data: items,
			Type: types.ChartLine,
		}
		s.InitSeriesDefaultOpts(line.BaseConfiguration)
		series = append(series, s)
	}
	line.MultiSeries = series
}

// Render 把记录数据渲染为 HTML 曲线页面
func (d *Datalog) Render(w io.Writer) error {
	lineW := newLine("转速曲线", "速度参考与转速估计随时间变化曲线")
	d.addSeries(lineW, "w_m_ref", "w_m")
	lineI := newLine("电流曲线", "定子电流测量与参考随时间变化曲线")
	d.addSeries(lineI, "i_sd", "i_sq", "i_sd_ref", "i_sq_ref")
	lineU := newLine("电压曲线", "电压参考与母线电压随时间变化曲线")
	d.addSeries(lineU, "u_sd_ref", "u_sq_ref", "u_dc")
	lineT := newLine("转矩曲线", "限幅后转矩参考随时间变化曲线")
	d.addSeries(lineT, "tau_ref")

	page := components.NewPage()
	page.AddCharts(
		lineW,
		lineI,
		lineU,
		lineT,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (d *Datalog) Handler(w http.ResponseWriter, _ *http.Request) {
	d.Render(w)
}
