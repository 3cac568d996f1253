package refs

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"drive/maths"
	"drive/pu"
)

// xys 以电流基值标幺化后的轨迹点
func xys(locus []maths.Phasor, iBase float64) plotter.XYs {
	pts := make(plotter.XYs, len(locus))
	for i, v := range locus {
		pts[i].X = v.D / iBase
		pts[i].Y = v.Q / iBase
	}
	return pts
}

// Plot 绘制标幺化后的 MTPA 与 MTPV 轨迹并写入图片文件
// 仅供查看，控制回路不消费绘图结果。
func (o *OptimalLoci) Plot(isMax float64, base *pu.BaseValues, path string) error {
	mtpa, err := o.MTPA(isMax, defaultN)
	if err != nil {
		return err
	}
	mtpv, err := o.MTPV(isMax, defaultN)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Optimal current loci"
	p.X.Label.Text = "i_sd (p.u.)"
	p.Y.Label.Text = "i_sq (p.u.)"
	p.Legend.Top = true
	err = plotutil.AddLinePoints(p,
		"MTPA", xys(mtpa, base.I),
		"MTPV", xys(mtpv, base.I),
	)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
