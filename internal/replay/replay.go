// Package replay mounts a demo component into an in-memory document and
// drives it with a scripted sequence of host events.
//
// Scripts are YAML:
//
//	demo: todo
//	steps:
//	  - input: {id: draft, value: "Buy milk"}
//	  - click: add
//	  - expect: "Buy milk"
//	  - redraw: true
package replay

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rewax/internal/demo"
	"github.com/vango-dev/rewax/internal/errors"
	"github.com/vango-dev/rewax/pkg/dom"
	"github.com/vango-dev/rewax/pkg/rewax"
)

// Script is a parsed replay script.
type Script struct {
	Demo  string `yaml:"demo"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted action: at most one of Click, Input and Redraw, plus
// an optional Expect substring checked against the markup afterwards. A step
// may consist of Expect alone.
type Step struct {
	Click  string      `yaml:"click,omitempty"`
	Input  *InputEvent `yaml:"input,omitempty"`
	Redraw bool        `yaml:"redraw,omitempty"`
	Expect string      `yaml:"expect,omitempty"`
}

// InputEvent types value into the element with the given id.
type InputEvent struct {
	ID    string `yaml:"id"`
	Value string `yaml:"value"`
}

// String describes the step for reports.
func (s Step) String() string {
	var action string
	switch {
	case s.Click != "":
		action = "click #" + s.Click
	case s.Input != nil:
		action = fmt.Sprintf("input #%s %q", s.Input.ID, s.Input.Value)
	case s.Redraw:
		action = "redraw"
	}
	switch {
	case s.Expect == "" && action == "":
		return "empty"
	case s.Expect == "":
		return action
	case action == "":
		return fmt.Sprintf("expect %q", s.Expect)
	}
	return fmt.Sprintf("%s, expect %q", action, s.Expect)
}

func (s Step) actions() int {
	n := 0
	if s.Click != "" {
		n++
	}
	if s.Input != nil {
		n++
	}
	if s.Redraw {
		n++
	}
	return n
}

// Parse decodes and checks a script.
func Parse(data []byte) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.New("R041").WithDetail(err.Error())
	}
	if sc.Demo == "" {
		return nil, errors.New("R041").WithDetail("the script names no demo")
	}
	if _, err := demo.Lookup(sc.Demo); err != nil {
		return nil, err
	}
	for i, step := range sc.Steps {
		switch n := step.actions(); {
		case n > 1:
			return nil, errors.New("R041").
				WithDetailf("step %d sets more than one of click, input, redraw", i+1)
		case n == 0 && step.Expect == "":
			return nil, errors.New("R041").
				WithDetailf("step %d has no action and no expect", i+1)
		}
		if step.Input != nil && step.Input.ID == "" {
			return nil, errors.New("R041").WithDetailf("step %d: input needs an id", i+1)
		}
	}
	return &sc, nil
}

// ParseFile reads and parses a script file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R041").WithDetail("could not read " + path).Wrap(err)
	}
	return Parse(data)
}

// Player runs scripts against a fresh document.
type Player struct {
	out     io.Writer
	opts    []rewax.Option
	patcher *countingPatcher
	doc     *dom.Document
	rt      *rewax.Runtime
}

// countingPatcher counts the patches applied since the last reset.
type countingPatcher struct {
	inner   *dom.Patcher
	patches int
}

func (p *countingPatcher) Diff(container *html.Node, markup string) (*dom.PatchSet, error) {
	return p.inner.Diff(container, markup)
}

func (p *countingPatcher) Apply(container *html.Node, ps *dom.PatchSet) error {
	p.patches += ps.Len()
	return p.inner.Apply(container, ps)
}

// NewPlayer creates a player that reports to out. opts configure the
// runtime; host and patcher are always the player's own.
func NewPlayer(out io.Writer, opts ...rewax.Option) *Player {
	return &Player{out: out, opts: opts}
}

// Run mounts the script's demo and executes its steps, writing the host
// markup and patch count after each one.
func (p *Player) Run(sc *Script) error {
	component, err := demo.Lookup(sc.Demo)
	if err != nil {
		return err
	}

	p.doc, err = dom.NewDocument(`<div id="app"></div>`)
	if err != nil {
		return err
	}
	p.patcher = &countingPatcher{}
	opts := append(append([]rewax.Option(nil), p.opts...),
		rewax.WithHost(p.doc),
		rewax.WithPatcher(p.patcher),
	)
	p.rt = rewax.NewRuntime(opts...)
	p.patcher.inner = dom.NewPatcher(p.rt.Config().Diff)

	app := p.rt.NewInstance()
	container := p.doc.GetElementByID("app")
	if _, err := app.Render(func() string { return component(app) }, container); err != nil {
		return err
	}
	p.report(0, "mount", container)

	for i, step := range sc.Steps {
		p.patcher.patches = 0
		if err := p.step(app, container, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		p.report(i+1, step.String(), container)
	}
	return nil
}

func (p *Player) step(app *rewax.Instance, container *html.Node, step Step) error {
	var err error
	switch {
	case step.Click != "":
		err = p.fire(step.Click, "click", "")
	case step.Input != nil:
		err = p.fire(step.Input.ID, "input", step.Input.Value)
	case step.Redraw:
		err = app.Redraw()
	}
	if err != nil || step.Expect == "" {
		return err
	}
	if markup := dom.InnerHTML(container); !strings.Contains(markup, step.Expect) {
		return errors.New("R042").WithDetailf("markup does not contain %q", step.Expect)
	}
	return nil
}

func (p *Player) fire(id, eventType, value string) error {
	target, err := p.doc.MustGetElementByID(id)
	if err != nil {
		return errors.New("R041").WithDetailf("no element #%s", id).Wrap(err)
	}
	if _, err := dom.Fire(target, eventType, value, p.rt); err != nil {
		return err
	}
	return nil
}

func (p *Player) report(n int, what string, container *html.Node) {
	fmt.Fprintf(p.out, "[%d] %s (%d patches)\n%s\n", n, what, p.patcher.patches, dom.InnerHTML(container))
}
