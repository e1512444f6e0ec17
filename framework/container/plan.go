package container

import (
	"fmt"
	"strings"
)

// Plan describes how Make would build a type, without building anything.
type Plan struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Params []PlanParam `json:"params,omitempty"`
}

// PlanParam is one constructor parameter of a Plan.
type PlanParam struct {
	Name         string `json:"name"`
	DeclaredType string `json:"declaredType"`
	Source       Source `json:"source"`
	// Target is the symbolic name that will be built; empty for custom values.
	Target string `json:"target,omitempty"`
	Plan   *Plan  `json:"plan,omitempty"`
}

// Explain walks the same resolution as Make and reports, for every
// parameter, which source supplies it. Only the keys of custom matter.
// Unknown names and cycles fail exactly as they would in Make.
func (c *Container) Explain(name string, custom map[string]any) (*Plan, error) {
	return c.explain(name, custom, nil, "")
}

func (c *Container) explain(name string, custom map[string]any, path []string, param string) (*Plan, error) {
	specd, _ := c.store.Get(name)
	typ, path, err := c.resolve(name, path, param)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Name: typ.Name(), Type: typ.Out().String()}
	for _, spec := range parseConstructorArgs(typ) {
		source, target := choose(spec, specd, custom)
		pp := PlanParam{
			Name:         spec.Name,
			DeclaredType: spec.DeclaredType,
			Source:       source,
			Target:       target,
		}
		if source != SourceCustom {
			if pp.Plan, err = c.explain(target, nil, path, spec.Name); err != nil {
				return nil, err
			}
		}
		plan.Params = append(plan.Params, pp)
	}
	return plan, nil
}

// String renders the plan as an indented tree.
//
//	app.service (*app.Service)
//	  logger <- app.fileLogger [configured]
//	    app.filelogger (*app.FileLogger)
func (p *Plan) String() string {
	var b strings.Builder
	p.write(&b, 0)
	return b.String()
}

func (p *Plan) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s (%s)\n", indent, p.Name, p.Type)
	for _, pp := range p.Params {
		if pp.Source == SourceCustom {
			fmt.Fprintf(b, "%s  %s [custom]\n", indent, pp.Name)
			continue
		}
		fmt.Fprintf(b, "%s  %s <- %s [%s]\n", indent, pp.Name, pp.Target, pp.Source)
		if pp.Plan != nil {
			pp.Plan.write(b, depth+2)
		}
	}
}
