package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/scene"
)

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(n int) *frameHistory {
	return &frameHistory{samples: make([]float32, n)}
}

func (h *frameHistory) push(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

func (h *frameHistory) avg() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples {
		total += ms
	}
	return total / float32(h.filled)
}

// StatsPanel shows the game's counters, its ECS contents and per-system
// timings.
type StatsPanel struct {
	source  func() (scene.Stats, bool)
	frames  *frameHistory
	last    time.Time
	storage func() *ecs.Storage
}

// NewStatsPanel reads stats from source on every frame. source reports false
// while no game is active.
func NewStatsPanel(source func() (scene.Stats, bool), storage func() *ecs.Storage) *StatsPanel {
	return &StatsPanel{
		source:  source,
		frames:  newFrameHistory(120),
		storage: storage,
	}
}

func (p *StatsPanel) Render() {
	now := time.Now()
	if !p.last.IsZero() {
		p.frames.push(now.Sub(p.last))
	}
	p.last = now

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	if !imgui.BeginV("Bounce", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats, ok := p.source()
	if !ok {
		imgui.Text("No game running")
		imgui.End()
		return
	}

	for _, line := range scoreLines(stats) {
		imgui.Text(line)
	}

	imgui.Separator()
	avg := p.frames.avg()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.frames.samples[0], int32(len(p.frames.samples)))

	if stats.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			for _, h := range []string{"System", "Runs", "Last", "Avg", "Max"} {
				imgui.TableSetupColumn(h)
			}
			imgui.TableHeadersRow()
			for _, row := range systemRows(stats.Scheduler) {
				imgui.TableNextRow()
				for _, cell := range row {
					imgui.TableNextColumn()
					imgui.Text(cell)
				}
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if storage := p.storage(); storage != nil && imgui.TreeNodeStr("Components") {
		for _, line := range componentLines(storage.CollectStats()) {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func scoreLines(s scene.Stats) []string {
	return []string{
		fmt.Sprintf("Moves: %d", s.Score.Moves),
		fmt.Sprintf("Killed: %d / %d", s.Score.MonsterKilled, s.Score.MonsterCount),
		fmt.Sprintf("Remaining: %d", s.Score.Remaining()),
		fmt.Sprintf("Entities: %d", s.Entities),
	}
}

func systemRows(stats *ecs.SchedulerStats) [][]string {
	rows := make([][]string, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		rows = append(rows, []string{
			sys.Name,
			fmt.Sprintf("%d", sys.ExecutionCount),
			sys.LastDuration.String(),
			sys.AvgDuration.String(),
			sys.MaxDuration.String(),
		})
	}
	return rows
}

func componentLines(stats ecs.StorageStats) []string {
	lines := make([]string, 0, len(stats.ComponentCounts)+len(stats.SingletonTypes))
	for name, n := range stats.ComponentCounts {
		lines = append(lines, fmt.Sprintf("%s: %d", name, n))
	}
	sort.Strings(lines)
	for _, name := range stats.SingletonTypes {
		lines = append(lines, name+" (singleton)")
	}
	return lines
}
