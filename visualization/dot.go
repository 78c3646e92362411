package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/trafficflow"
)

// DOTGenerator renders the phase plan of a schedule in Graphviz DOT format:
// one node per green and yellow phase in service order, then Complete
type DOTGenerator struct {
	ranked  []trafficflow.RankedEntry
	policy  trafficflow.TimingPolicy
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowDurations bool
	ShowCounts    bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
	GreenColor    string
	YellowColor   string
	// Active, when set, is drawn with a bold outline
	Active *trafficflow.Step
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowDurations: true,
		ShowCounts:    true,
		RankDirection: "LR",
		NodeShape:     "box",
		GreenColor:    "palegreen",
		YellowColor:   "khaki",
	}
}

// NewDOTGenerator creates a DOT generator for a ranked order and policy
func NewDOTGenerator(ranked []trafficflow.RankedEntry, policy trafficflow.TimingPolicy, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		ranked:  ranked,
		policy:  policy,
		options: opts,
	}
}

// NewDOTGeneratorForState renders the plan of a running or finished state,
// highlighting its current step
func NewDOTGeneratorForState(state trafficflow.ScheduleState, options ...DOTOptions) *DOTGenerator {
	g := NewDOTGenerator(state.Ranked(), state.Policy(), options...)
	if state.Status() != trafficflow.StatusIdle {
		step := state.Step()
		g.options.Active = &step
	}
	return g
}

// Generate creates a DOT representation of the phase plan
func (g *DOTGenerator) Generate() (string, error) {
	if len(g.ranked) == 0 {
		return "", fmt.Errorf("empty service order")
	}
	if err := g.policy.Validate(); err != nil {
		return "", err
	}

	var dot strings.Builder

	dot.WriteString("digraph PhasePlan {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generatePhases(&dot)
	dot.WriteString("\n")
	g.generateTransitions(&dot)

	dot.WriteString("}\n")
	return dot.String(), nil
}

func (g *DOTGenerator) steps() []trafficflow.Step {
	steps := make([]trafficflow.Step, 0, 2*len(g.ranked)+1)
	for _, e := range g.ranked {
		steps = append(steps,
			trafficflow.Step{Direction: e.Direction, Phase: trafficflow.PhaseGreen},
			trafficflow.Step{Direction: e.Direction, Phase: trafficflow.PhaseYellow},
		)
	}
	return append(steps, trafficflow.Step{Complete: true})
}

func (g *DOTGenerator) generatePhases(dot *strings.Builder) {
	for i, e := range g.ranked {
		green := trafficflow.Step{Direction: e.Direction, Phase: trafficflow.PhaseGreen}
		label := green.String()
		if g.options.ShowCounts {
			label += fmt.Sprintf("\\n%d vehicles", e.Count)
		}
		if g.options.ShowDurations {
			label += fmt.Sprintf("\\n%ds", g.policy.GreenDuration(e.Count))
		}
		g.generateNode(dot, green, label, g.options.GreenColor, i == 0)

		yellow := trafficflow.Step{Direction: e.Direction, Phase: trafficflow.PhaseYellow}
		label = yellow.String()
		if g.options.ShowDurations {
			label += fmt.Sprintf("\\n%ds", g.policy.YellowDuration())
		}
		g.generateNode(dot, yellow, label, g.options.YellowColor, false)
	}

	complete := trafficflow.Step{Complete: true}
	label := complete.String()
	if g.options.ShowDurations {
		label += fmt.Sprintf("\\ncycle %ds", g.policy.CycleTime(g.ranked))
	}
	dot.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", shape=doublecircle, style=filled, fillcolor=lightgray%s];\n",
		complete, label, g.activeAttr(complete)))
}

func (g *DOTGenerator) generateNode(dot *strings.Builder, step trafficflow.Step, label, color string, initial bool) {
	attrs := fmt.Sprintf("label=\"%s\", style=filled, fillcolor=%s", label, color)
	if initial {
		attrs += ", peripheries=2"
	}
	attrs += g.activeAttr(step)
	dot.WriteString(fmt.Sprintf("  \"%s\" [%s];\n", step, attrs))
}

func (g *DOTGenerator) activeAttr(step trafficflow.Step) string {
	if g.options.Active != nil && *g.options.Active == step {
		return ", penwidth=3"
	}
	return ""
}

func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	steps := g.steps()
	for i := 0; i+1 < len(steps); i++ {
		from, to := steps[i], steps[i+1]
		label := "expire"
		if from.Phase == trafficflow.PhaseYellow {
			label = fmt.Sprintf("%s serviced", from.Direction)
		}
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n", from, to, label))
	}
}

// GenerateToFile generates DOT content and saves it to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(content), 0644)
}

// GenerateSVG pipes the DOT content through the Graphviz dot command
func (g *DOTGenerator) GenerateSVG() (string, error) {
	dotContent, err := g.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}
