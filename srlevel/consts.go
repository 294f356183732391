package srlevel

import "github.com/uyouii/sr-analysis/model"

const (
	DefaultPivotOrder     = 5
	DefaultTrendlineOrder = 20
	DefaultATRPeriod      = 14
	DefaultATRMultiplier  = 1.0

	// levels are rounded to this precision before deduplication
	LevelRoundDecimals = 5

	UptrendSupportName      = "Uptrend Support"
	DowntrendResistanceName = "Downtrend Resistance"
)

var (
	UptrendSupportStyle      = model.LineStyle{Color: "green", Dash: "--", Width: 1.5}
	DowntrendResistanceStyle = model.LineStyle{Color: "red", Dash: "--", Width: 1.5}
)
