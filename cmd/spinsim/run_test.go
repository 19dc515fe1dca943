package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunScene(t *testing.T) {
	cases := []struct {
		name       string
		opts       runOptions
		wantOut    []string
		wantTraces int
	}{
		{
			name:    "table",
			opts:    runOptions{Scene: "zero_g.yaml", Ticks: 5, Seed: 1},
			wantOut: []string{"scene zero_g: 5 ticks", "APPLIED", "spinner_continuous", "every_frame", "once"},
		},
		{
			name:       "debug",
			opts:       runOptions{Scene: "zero_g.yaml", Ticks: 3, Seed: 1, Debug: true},
			wantOut:    []string{"scene zero_g: 3 ticks"},
			wantTraces: 5,
		},
		{
			name:    "plot",
			opts:    runOptions{Scene: "zero_g.yaml", Ticks: 20, Seed: 2, Plot: true, PlotHeight: 4},
			wantOut: []string{"angular velocity per tick"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if err := runScene(&out, &errOut, c.opts); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, want := range c.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("output missing %q:\n%s", want, out.String())
				}
			}
			if got := strings.Count(errOut.String(), "Angular Velocity Applied"); got != c.wantTraces {
				t.Fatalf("expected %d traces, got %d:\n%s", c.wantTraces, got, errOut.String())
			}
		})
	}
}

func TestRunSceneErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := runScene(&out, &errOut, runOptions{Scene: "zero_g.yaml", Ticks: 0}); err == nil {
		t.Fatal("expected error for zero ticks")
	}
	if err := runScene(&out, &errOut, runOptions{Scene: "nope.yaml", Ticks: 1}); err == nil {
		t.Fatal("expected error for missing scene")
	}
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"prefabs"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "spinner.yaml") {
		t.Fatalf("expected spinner.yaml in listing:\n%s", out.String())
	}

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", "--scene", "zero_g.yaml", "--ticks", "2", "--seed", "4"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "scene zero_g: 2 ticks") {
		t.Fatalf("unexpected run output:\n%s", out.String())
	}
}
