package model

import (
	"math"
	"time"
)

type SREventType int

const (
	UpwardSREvent   SREventType = 1
	DownwardSREvent SREventType = 2
)

func (t SREventType) String() string {
	switch t {
	case UpwardSREvent:
		return "upward"
	case DownwardSREvent:
		return "downward"
	}
	return "unknown"
}

// SREvent marks an observation whose z-score against the trailing window
// crossed the detection threshold.
type SREvent struct {
	SREventType SREventType `json:"type"`
	Index       int         `json:"index"`
	TimeValue   TimeValue   `json:"point"`
	ZScore      float64     `json:"z_score"`
}

// RollingStat holds the trailing window statistics for one observation.
// Observations before the first full window hold NaN in every field.
type RollingStat struct {
	Mean   float64
	Std    float64
	Diff   float64
	ZScore float64
}

func (r RollingStat) Defined() bool {
	return !math.IsNaN(r.ZScore)
}

type PivotKind int

const (
	LowPivot  PivotKind = 1
	HighPivot PivotKind = 2
)

func (k PivotKind) String() string {
	switch k {
	case LowPivot:
		return "low"
	case HighPivot:
		return "high"
	}
	return "unknown"
}

// Pivot is a local extremum of the low or high price track.
type Pivot struct {
	Kind  PivotKind `json:"kind"`
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// LineStyle carries chart styling hints. Analysis code only attaches the
// style, interpreting it is left to the renderer.
type LineStyle struct {
	Color string  `json:"color"`
	Dash  string  `json:"dash"`
	Width float64 `json:"width"`
}

type Trendline struct {
	Name  string    `json:"name"`
	Start TimeValue `json:"start"`
	End   TimeValue `json:"end"`
	Style LineStyle `json:"style"`
}

type Report struct {
	Labels      map[string]string `json:"labels,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Events      []SREvent         `json:"events,omitempty"`
	Levels      []float64         `json:"levels,omitempty"`
	Trendlines  []Trendline       `json:"trendlines,omitempty"`
}
