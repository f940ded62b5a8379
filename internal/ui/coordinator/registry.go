package coordinator

import (
	"fmt"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// View pairs a tab's metadata with the surface that renders it.
type View struct {
	Tab     *entity.Tab
	Surface port.Surface
}

// Registry maps tab ids to views, keeping creation order.
// It holds no lock; TabManager guards it.
type Registry struct {
	views map[entity.TabID]View
	order []entity.TabID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[entity.TabID]View)}
}

// Insert adds a view. Both tab and surface are required and the id must be new.
func (r *Registry) Insert(tab *entity.Tab, surface port.Surface) error {
	if tab == nil || surface == nil {
		return fmt.Errorf("registry: insert requires tab and surface")
	}
	if _, exists := r.views[tab.ID]; exists {
		return fmt.Errorf("registry: duplicate tab id %q", tab.ID)
	}
	r.views[tab.ID] = View{Tab: tab, Surface: surface}
	r.order = append(r.order, tab.ID)
	return nil
}

// Lookup returns the view for id.
func (r *Registry) Lookup(id entity.TabID) (View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id entity.TabID) bool {
	_, ok := r.views[id]
	return ok
}

// Remove deletes id. Returns false if it was not registered.
func (r *Registry) Remove(id entity.TabID) bool {
	if _, ok := r.views[id]; !ok {
		return false
	}
	delete(r.views, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	return len(r.views)
}

// IDs returns tab ids in creation order.
func (r *Registry) IDs() []entity.TabID {
	ids := make([]entity.TabID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Views returns views in creation order.
func (r *Registry) Views() []View {
	views := make([]View, 0, len(r.order))
	for _, id := range r.order {
		views = append(views, r.views[id])
	}
	return views
}

// Clear removes every view.
func (r *Registry) Clear() {
	r.views = make(map[entity.TabID]View)
	r.order = nil
}
