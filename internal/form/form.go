package form

// Form is a compiled unit: one component tree bound to one class.
type Form struct {
	// ClassToBind is the dotted name of the bound class. Empty accepts any class.
	ClassToBind  string
	Components   []*Component
	ButtonGroups []ButtonGroup
}

// Root returns the single top-level component, or nil when there is not
// exactly one.
func (f *Form) Root() *Component {
	if len(f.Components) != 1 {
		return nil
	}
	return f.Components[0]
}

// Component is one node of the tree.
type Component struct {
	ID string
	// Class is the dotted name of the concrete component class.
	Class   string
	Binding string
	// CustomCreate components are created by the bound class's
	// createUIComponents method and read back from their bound field.
	CustomCreate bool
	// LabelFor names the ID of the component this label describes.
	LabelFor    string
	Properties  []Property
	Constraints Constraints
	Layout      Layout
	Children    []*Component
}

// IsContainer reports whether c lays out children.
func (c *Component) IsContainer() bool {
	return c.Layout != nil || len(c.Children) > 0
}

// Name returns the most descriptive identifier of c for messages.
func (c *Component) Name() string {
	switch {
	case c.Binding != "":
		return c.Binding
	case c.ID != "":
		return c.ID
	default:
		return c.Class
	}
}

// Property is one named property assignment.
type Property struct {
	Name  string
	Value Value
}

// ButtonGroup groups buttons so that at most one is selected.
type ButtonGroup struct {
	Name string
	// Bound stores the group into the bound class field called Name.
	Bound   bool
	Members []string
}

// Walk visits c and its descendants depth-first. parent is nil for c itself.
// Returning false from fn skips the children of the visited node.
func Walk(c *Component, fn func(c, parent *Component) bool) {
	walk(c, nil, fn)
}

func walk(c, parent *Component, fn func(c, parent *Component) bool) {
	if !fn(c, parent) {
		return
	}
	for _, child := range c.Children {
		walk(child, c, fn)
	}
}

// Index maps component IDs to components for every node in the form.
func (f *Form) Index() map[string]*Component {
	index := make(map[string]*Component)
	for _, root := range f.Components {
		Walk(root, func(c, _ *Component) bool {
			if c.ID != "" {
				index[c.ID] = c
			}
			return true
		})
	}
	return index
}
