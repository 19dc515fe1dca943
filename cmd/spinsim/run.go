package main

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/prefabs"
	"github.com/milk9111/lpk/sim"
)

var prefabsList = prefabs.List

// headingStyle renders through a renderer bound to the output writer, so
// piped or buffered output stays plain text.
func headingStyle(out io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("86"))
}

type runOptions struct {
	Scene      string
	Ticks      int
	Seed       uint64
	Debug      bool
	Plot       bool
	PlotHeight int
}

// sampler records, per spinner, how often it was applied and the body's
// angular velocity at the end of every tick.
type sampler struct {
	order   []ecs.Entity
	applied map[ecs.Entity]int
	series  map[ecs.Entity][]float64
}

func newSampler() *sampler {
	return &sampler{
		applied: make(map[ecs.Entity]int),
		series:  make(map[ecs.Entity][]float64),
	}
}

func (s *sampler) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if a, ok := evt.Data.(ecs.AngularVelocityApplied); ok {
			s.applied[a.Entity]++
		}
	}
	ecs.ForEach2(w, component.AngularVelocityComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.AngularVelocity, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		if _, ok := s.series[e]; !ok {
			s.order = append(s.order, e)
		}
		s.series[e] = append(s.series[e], pb.Body.AngularVelocity())
	})
}

func runScene(out, errOut io.Writer, opts runOptions) error {
	if opts.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", opts.Ticks)
	}

	s, err := sim.Load(opts.Scene, sim.Options{
		Seed:       opts.Seed,
		Logger:     log.New(errOut, "spinsim: ", 0),
		ForceDebug: opts.Debug,
	})
	if err != nil {
		return err
	}
	smp := newSampler()
	s.AddSystem(smp)

	for i := 0; i < opts.Ticks; i++ {
		s.Step()
	}

	heading := headingStyle(out)
	fmt.Fprintln(out, heading.Render(fmt.Sprintf("scene %s: %d ticks", s.Scene.Name, s.Ticks())))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tNAME\tMODE\tFORCE\tVARIANCE\tAPPLIED\tLAST\tFINAL")
	for _, e := range smp.order {
		av, ok := ecs.Get(s.World, e, component.AngularVelocityComponent.Kind())
		if !ok {
			continue
		}
		mode := "once"
		if av.EveryFrame {
			mode = "every_frame"
		}
		series := smp.series[e]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.3f\t%.3f\t%d\t%.3f\t%.3f\n",
			e, entityName(s.World, e), mode, av.Force, av.Variance, smp.applied[e], av.Behavior.LastForce(), series[len(series)-1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.Plot {
		height := opts.PlotHeight
		if height <= 0 {
			height = 10
		}
		for _, e := range smp.order {
			series := smp.series[e]
			if len(series) < 2 {
				continue
			}
			graph := asciigraph.Plot(series,
				asciigraph.Height(height),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("entity %d angular velocity per tick", e)),
			)
			fmt.Fprintln(out)
			fmt.Fprintln(out, heading.Render(entityName(s.World, e)))
			fmt.Fprintln(out, graph)
		}
	}
	return nil
}

func entityName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return ""
}
