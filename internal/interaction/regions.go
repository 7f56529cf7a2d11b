package interaction

import "sync"

// RegionID names an input region declared by the presentation layer.
type RegionID string

// RootRegion is the outer navigation surface. Events with an empty target
// are treated as landing on it.
const RootRegion RegionID = ""

// Regions records which declared regions own their own scroll/swipe input.
// Ownership is tagged on registration and resolved through the registry's
// parent links, so the normalizer never walks a rendering tree.
type Regions struct {
	mu         sync.RWMutex
	parent     map[RegionID]RegionID
	ownsScroll map[RegionID]bool
}

// NewRegions returns an empty registry.
func NewRegions() *Regions {
	return &Regions{
		parent:     make(map[RegionID]RegionID),
		ownsScroll: make(map[RegionID]bool),
	}
}

// Register declares id as a child of parent. ownsScroll marks the region as
// a nested scroll container whose gestures must not drive outer navigation.
func (r *Regions) Register(id, parent RegionID, ownsScroll bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parent[id] = parent
	r.ownsScroll[id] = ownsScroll
}

// Unregister removes a region declaration.
func (r *Regions) Unregister(id RegionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.parent, id)
	delete(r.ownsScroll, id)
}

// OwnsScroll reports whether id or any registered ancestor owns scroll input.
// Unknown regions own nothing.
func (r *Regions) OwnsScroll(id RegionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[RegionID]bool)
	for id != RootRegion && !seen[id] {
		seen[id] = true
		if r.ownsScroll[id] {
			return true
		}
		p, ok := r.parent[id]
		if !ok {
			return false
		}
		id = p
	}
	return false
}
