// Package annotation records semantic metadata about screen regions
// during a render pass, so headless tests can ask "where is the submit
// button" instead of matching raw cells.
package annotation

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
)

// WidgetType classifies the widget an annotation describes.
type WidgetType string

const (
	WidgetButton      WidgetType = "button"
	WidgetTextInput   WidgetType = "text_input"
	WidgetList        WidgetType = "list"
	WidgetListItem    WidgetType = "list_item"
	WidgetCheckbox    WidgetType = "checkbox"
	WidgetSpinner     WidgetType = "spinner"
	WidgetProgressBar WidgetType = "progress_bar"
	WidgetStatusBar   WidgetType = "status_bar"
	WidgetLabel       WidgetType = "label"
	WidgetContainer   WidgetType = "container"
	WidgetCustom      WidgetType = "custom"
)

// Annotation is the metadata a widget attaches to its screen region.
type Annotation struct {
	ID       string
	Type     WidgetType
	Label    string
	Value    string
	Focused  bool
	Selected bool
	Disabled bool
}

// Region is a recorded (rect, annotation) pair. Nesting established by
// Open/Close scopes is captured as a parent index and depth.
type Region struct {
	Rect       backend.Rect
	Annotation Annotation

	parent int
	depth  int
}

// Depth reports how many open containers enclosed the region when it
// was recorded. Top-level regions have depth 0.
func (r Region) Depth() int {
	return r.depth
}

// Registry collects regions for one render pass.
type Registry struct {
	regions []Region
	open    []int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Record adds a leaf region under the innermost open container.
func (r *Registry) Record(rect backend.Rect, a Annotation) {
	r.regions = append(r.regions, Region{
		Rect:       rect,
		Annotation: a,
		parent:     r.currentParent(),
		depth:      len(r.open),
	})
}

// Open records a container region and makes it the parent of regions
// recorded until the matching Close.
func (r *Registry) Open(rect backend.Rect, a Annotation) {
	r.regions = append(r.regions, Region{
		Rect:       rect,
		Annotation: a,
		parent:     r.currentParent(),
		depth:      len(r.open),
	})
	r.open = append(r.open, len(r.regions)-1)
}

// Close ends the innermost open container. Unbalanced calls are
// ignored.
func (r *Registry) Close() {
	if len(r.open) > 0 {
		r.open = r.open[:len(r.open)-1]
	}
}

func (r *Registry) currentParent() int {
	if len(r.open) == 0 {
		return -1
	}
	return r.open[len(r.open)-1]
}

// Regions returns all recorded regions in record order.
func (r *Registry) Regions() []Region {
	return r.regions
}

// Len reports the number of recorded regions.
func (r *Registry) Len() int {
	return len(r.regions)
}

// GetByID returns the first region whose annotation carries id.
func (r *Registry) GetByID(id string) (Region, bool) {
	for _, reg := range r.regions {
		if reg.Annotation.ID == id {
			return reg, true
		}
	}
	return Region{}, false
}

// FindByType returns all regions of the given widget type, in record
// order.
func (r *Registry) FindByType(t WidgetType) []Region {
	var out []Region
	for _, reg := range r.regions {
		if reg.Annotation.Type == t {
			out = append(out, reg)
		}
	}
	return out
}

// At returns the innermost region containing (x, y): the deepest
// match, breaking ties toward the most recently recorded.
func (r *Registry) At(x, y int) (Region, bool) {
	best := -1
	for i, reg := range r.regions {
		if !reg.Rect.Contains(x, y) {
			continue
		}
		if best == -1 || reg.depth >= r.regions[best].depth {
			best = i
		}
	}
	if best == -1 {
		return Region{}, false
	}
	return r.regions[best], true
}

// Parent returns the container region enclosing reg, if any.
func (r *Registry) Parent(reg Region) (Region, bool) {
	if reg.parent < 0 || reg.parent >= len(r.regions) {
		return Region{}, false
	}
	return r.regions[reg.parent], true
}
