package model

// Decorator enriches a form template after it has been loaded, for example by
// resolving widget kinds for each element.
type Decorator interface {
	Decorate(*FormTemplate) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormTemplate) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(template *FormTemplate) error {
	return fn(template)
}

// Elements returns every element of the template in section order.
func (t FormTemplate) Elements() []Element {
	var out []Element
	for _, section := range t.Layout.Sections {
		out = append(out, section.Elements...)
	}
	return out
}
