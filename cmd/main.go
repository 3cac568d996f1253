package main

import (
	"fmt"
	"os"

	"drive"
)

func main() {
	cfg := drive.DefaultConfig()
	d, err := drive.Configure(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	profiles, err := drive.DefaultProfiles(d.Base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	d.Report(os.Stdout, profiles)

	// 绘制最优电流轨迹
	if err := d.Loci.Plot(2*d.Pars.IsMax, d.Base, "loci.png"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
