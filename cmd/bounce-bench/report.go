package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/bounce/ecs"
)

type Report struct {
	// Configuration
	Games     int
	MaxFrames int
	Seed      int64
	Monsters  int

	// Results
	Wins      int
	Moves     int
	Kills     int
	Frames    int
	TotalTime time.Duration
	FrameTime Stats
	Systems   *ecs.SchedulerStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P95 = sorted[(len(sorted)-1)*95/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Bounce Bench Report

## Configuration
- **Games:** {{.Games}}
- **Frame Limit:** {{.MaxFrames}}
- **Seed:** {{.Seed}}
- **Monsters per Game:** {{.Monsters}}

## Play
- **Won:** {{.Wins}} / {{.Games}}
- **Monsters Eliminated:** {{.Kills}} / {{mul .Monsters .Games}}
- **Moves:** {{.Moves}}
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}

## Frame Time
  - **Avg:** {{.FrameTime.Avg}}
  - **P95:** {{.FrameTime.P95}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
{{with .Systems}}
## Systems (last game)
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:         {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"mul": func(a, b int) int {
			return a * b
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
