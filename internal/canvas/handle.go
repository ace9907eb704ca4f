package canvas

// Handle owns one artifact on a canvas.
type Handle struct {
	canvas   Canvas
	id       ArtifactID
	released bool
}

// NewHandle takes ownership of id.
func NewHandle(c Canvas, id ArtifactID) *Handle {
	return &Handle{canvas: c, id: id}
}

// ID returns the owned artifact.
func (h *Handle) ID() ArtifactID { return h.id }

// Live reports whether the artifact has not been released. A nil handle is not live.
func (h *Handle) Live() bool { return h != nil && !h.released }

// Release removes the artifact. Calls after the first, and calls on a nil handle, do nothing.
func (h *Handle) Release() {
	if !h.Live() {
		return
	}
	h.released = true
	h.canvas.Remove(h.id)
}

// Group owns a set of artifacts released together.
type Group struct {
	canvas  Canvas
	handles []*Handle
}

// NewGroup returns an empty group drawing onto c.
func NewGroup(c Canvas) *Group {
	return &Group{canvas: c}
}

// Add takes ownership of id.
func (g *Group) Add(id ArtifactID) *Handle {
	h := NewHandle(g.canvas, id)
	g.handles = append(g.handles, h)
	return h
}

// Len returns the number of owned artifacts.
func (g *Group) Len() int { return len(g.handles) }

// IDs returns the owned artifact IDs in insertion order.
func (g *Group) IDs() []ArtifactID {
	ids := make([]ArtifactID, len(g.handles))
	for i, h := range g.handles {
		ids[i] = h.id
	}
	return ids
}

// Release removes every owned artifact and empties the group.
func (g *Group) Release() {
	for _, h := range g.handles {
		h.Release()
	}
	g.handles = g.handles[:0]
}
