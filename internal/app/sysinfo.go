package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/termwm/internal/config"
)

// SysInfoMsg carries one CPU and memory sample.
type SysInfoMsg struct {
	CPU      float64
	MemUsed  uint64
	MemTotal uint64
	Err      error
	At       time.Time
}

// SysInfo keeps the recent samples shown by the monitor pane and the panel.
type SysInfo struct {
	CPUHistory []float64
	MemUsed    uint64
	MemTotal   uint64
	LastUpdate time.Time
	LastErr    error
}

// SampleSysInfo reads CPU load since the previous call and memory usage.
func SampleSysInfo() SysInfoMsg {
	msg := SysInfoMsg{At: time.Now()}
	if pct, err := cpu.Percent(0, false); err != nil {
		msg.Err = fmt.Errorf("cpu: %w", err)
	} else if len(pct) > 0 {
		msg.CPU = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		msg.Err = fmt.Errorf("memory: %w", err)
	} else {
		msg.MemUsed, msg.MemTotal = vm.Used, vm.Total
	}
	return msg
}

// SysInfoCmd samples after the update interval.
func SysInfoCmd() tea.Cmd {
	return tea.Tick(config.CPUUpdateInterval, func(time.Time) tea.Msg {
		return SampleSysInfo()
	})
}

// Apply records a sample.
func (s *SysInfo) Apply(msg SysInfoMsg) {
	s.LastUpdate = msg.At
	s.LastErr = msg.Err
	if msg.Err != nil {
		return
	}
	s.CPUHistory = append(s.CPUHistory, clampPercent(msg.CPU))
	if over := len(s.CPUHistory) - config.CPUHistoryLength; over > 0 {
		s.CPUHistory = s.CPUHistory[over:]
	}
	s.MemUsed, s.MemTotal = msg.MemUsed, msg.MemTotal
}

// CPU returns the latest CPU percentage.
func (s *SysInfo) CPU() float64 {
	if len(s.CPUHistory) == 0 {
		return 0
	}
	return s.CPUHistory[len(s.CPUHistory)-1]
}

// MemPercent returns the used share of memory.
func (s *SysInfo) MemPercent() float64 {
	if s.MemTotal == 0 {
		return 0
	}
	return 100 * float64(s.MemUsed) / float64(s.MemTotal)
}

// Badge is the compact panel status, e.g. "cpu 12% · mem 3.1G/15.6G".
func (s *SysInfo) Badge() string {
	if s.LastUpdate.IsZero() || s.LastErr != nil {
		return ""
	}
	return fmt.Sprintf("cpu %.0f%% · mem %s/%s", s.CPU(), formatBytes(s.MemUsed), formatBytes(s.MemTotal))
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the last width samples as block characters, padded
// on the left so the graph keeps a fixed width.
func (s *SysInfo) Sparkline(width int) string {
	if width <= 0 {
		return ""
	}
	samples := s.CPUHistory
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(samples)))
	for _, v := range samples {
		i := min(int(v/100*float64(len(sparkBlocks))), len(sparkBlocks)-1)
		b.WriteRune(sparkBlocks[max(i, 0)])
	}
	return b.String()
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
