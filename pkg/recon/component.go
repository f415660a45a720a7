package recon

// Component is a polymorphic unit of render work. Render produces the
// component's child for the given state, or nil for a leaf. InitialState
// produces the state used the first time the component is built.
//
// A component instance may be shared by nodes in two different
// generations: when the builder reuses a subtree it attaches the same
// instance under the new parent, not a copy.
type Component interface {
	Render(state any) Component
	InitialState() any
}

// Container is an optional extension for components with more than one
// child. When a component implements Container, the builder ignores
// Render's single child and builds every component ChildComponents
// returns, in order. That order is preserved in the node's children.
type Container interface {
	Component
	ChildComponents(state any) []Component
}

// LeafComponent is an embeddable base for components that terminate
// recursion. Render returns nil and InitialState returns nil.
type LeafComponent struct{}

// Render implements Component.
func (LeafComponent) Render(any) Component { return nil }

// InitialState implements Component.
func (LeafComponent) InitialState() any { return nil }

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func(state any) Component
}

// Render implements Component.
func (f *FuncComponent) Render(state any) Component {
	return f.render(state)
}

// InitialState implements Component.
func (f *FuncComponent) InitialState() any { return nil }

// Func creates a component from a render function.
func Func(render func(state any) Component) Component {
	return &FuncComponent{render: render}
}
