package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// ColorLogger prints search progress to the terminal in a human
// readable, colorized form, for interactive use. Neither command in
// this repository constructs one: the bench runs with NulLogger, and a
// UCI loop uses its own Logger since the protocol requires a plain
// "info depth ..." line format.
type ColorLogger struct {
	start time.Time
}

func NewColorLogger() *ColorLogger { return &ColorLogger{} }

func (cl *ColorLogger) BeginSearch() { cl.start = time.Now() }

func (cl *ColorLogger) EndSearch() {
	color.New(color.Faint).Printf("search finished in %v\n", time.Since(cl.start).Round(time.Millisecond))
}

func (cl *ColorLogger) PrintPV(stats Stats, score int32, pv []Move) {
	depth := color.New(color.FgCyan).Sprintf("depth %2d/%2d", stats.Depth, stats.SelDepth)
	nodes := color.New(color.FgYellow).Sprintf("nodes %d", stats.Nodes)

	scoreColor := color.New(color.FgGreen)
	if score < 0 {
		scoreColor = color.New(color.FgRed)
	}
	scoreStr := scoreColor.Sprintf("score %+d", score)

	var pvStrs []string
	for _, m := range pv {
		pvStrs = append(pvStrs, m.String())
	}
	fmt.Printf("%s %s %s pv %s\n", depth, nodes, scoreStr, strings.Join(pvStrs, " "))
}
