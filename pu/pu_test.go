package pu

import (
	"errors"
	"math"
	"testing"
)

// TestBaseValuesIdentities 验证基值之间的代数恒等式。
func TestBaseValuesIdentities(t *testing.T) {
	w := 2 * math.Pi * 105.8
	i := math.Sqrt2 * 15.5
	u := math.Sqrt(2.0/3.0) * 370
	b, err := New(w, i, u, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// 阻抗·电流 = 电压
	if got := b.Z * b.I; math.Abs(got-u) > 1e-9 {
		t.Errorf("Z*I = %v, want %v", got, u)
	}
	// 电感·角频率 = 阻抗
	if got := b.L * b.W; math.Abs(got-b.Z) > 1e-9 {
		t.Errorf("L*W = %v, want %v", got, b.Z)
	}
	// 功率 = 1.5·电压·电流
	if got := 1.5 * u * i; math.Abs(got-b.P) > 1e-9 {
		t.Errorf("P = %v, want %v", b.P, got)
	}
	// 转矩·角频率 = 极对数·功率
	if got, want := b.Tau*b.W, float64(b.Np)*b.P; math.Abs(got-want) > 1e-9 {
		t.Errorf("Tau*W = %v, want %v", got, want)
	}
	// 磁链基值 = 电压/角频率
	if got := u / w; math.Abs(got-b.Psi) > 1e-12 {
		t.Errorf("Psi = %v, want %v", b.Psi, got)
	}
}

// TestBaseValuesInvalid 非正额定量必须拒绝。
func TestBaseValuesInvalid(t *testing.T) {
	cases := []struct {
		name    string
		w, i, u float64
		np      int
	}{
		{"零角频率", 0, 1, 1, 2},
		{"负电流", 100, -1, 1, 2},
		{"零电压", 100, 1, 0, 2},
		{"零极对数", 100, 1, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.w, c.i, c.u, c.np); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("New(%v,%v,%v,%d) err = %v, want ErrInvalidParameter", c.w, c.i, c.u, c.np, err)
			}
		})
	}
}
