package checks

import "github.com/bpuchala/CASMcode-monte/monte/sampler"

// PrecisionConstructor is a fluent builder for populating a
// SamplerComponent -> RequestedPrecision map: narrow to one component (by
// index or name, defaulting to "every component of this sampler"), then set
// its precision. Chain further Component/ComponentByName calls on the same
// builder to configure multiple components of the same sampler.
type PrecisionConstructor struct {
	target   map[sampler.SamplerComponent]RequestedPrecision
	all      []sampler.SamplerComponent
	selected []sampler.SamplerComponent
}

// Converge starts building requested precisions for samplerName, whose
// components are componentNames in index order. Every component starts out
// with the zero-value RequestedPrecision (no requirement), matching the
// convention that a component not mentioned in configuration converges
// trivially.
func Converge(target map[sampler.SamplerComponent]RequestedPrecision, samplerName string, componentNames []string) *PrecisionConstructor {
	all := make([]sampler.SamplerComponent, len(componentNames))
	for i, name := range componentNames {
		c := sampler.SamplerComponent{SamplerName: samplerName, ComponentIndex: i, ComponentName: name}
		all[i] = c
		if _, ok := target[c]; !ok {
			target[c] = RequestedPrecision{}
		}
	}
	return &PrecisionConstructor{target: target, all: all, selected: all}
}

// Component narrows the current selection to a single component by index.
func (b *PrecisionConstructor) Component(index int) *PrecisionConstructor {
	b.selected = b.all[index : index+1]
	return b
}

// ComponentByName narrows the current selection to a single component by
// name.
func (b *PrecisionConstructor) ComponentByName(name string) *PrecisionConstructor {
	for _, c := range b.all {
		if c.ComponentName == name {
			b.selected = []sampler.SamplerComponent{c}
			return b
		}
	}
	b.selected = nil
	return b
}

// Precision sets p on every currently-selected component.
func (b *PrecisionConstructor) Precision(p RequestedPrecision) *PrecisionConstructor {
	for _, c := range b.selected {
		b.target[c] = p
	}
	return b
}

// Abs requests absolute-precision convergence on the current selection.
func (b *PrecisionConstructor) Abs(value float64) *PrecisionConstructor {
	return b.Precision(Abs(value))
}

// Rel requests relative-precision convergence on the current selection.
func (b *PrecisionConstructor) Rel(value float64) *PrecisionConstructor {
	return b.Precision(Rel(value))
}

// AbsAndRel requests both absolute and relative precision convergence on
// the current selection.
func (b *PrecisionConstructor) AbsAndRel(abs, rel float64) *PrecisionConstructor {
	return b.Precision(AbsAndRel(abs, rel))
}
