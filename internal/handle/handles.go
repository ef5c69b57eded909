package handle

// Handles collects related handles so they can be dropped or made
// permanent together. Dummy handles are not stored.
type Handles struct {
	list []Handle
}

// Push adds a handle to the collection. Dummies are discarded.
func (hs *Handles) Push(h Handle) {
	if !h.IsDummy() {
		hs.list = append(hs.list, h)
	}
}

// IsDummy reports whether the collection holds no live handle.
func (hs *Handles) IsDummy() bool {
	for _, h := range hs.list {
		if !h.IsDummy() {
			return false
		}
	}
	return true
}

// Perm marks every handle permanent and empties the collection.
func (hs *Handles) Perm() {
	for _, h := range hs.list {
		h.Perm()
	}
	hs.list = nil
}

// Clear drops every handle and empties the collection.
func (hs *Handles) Clear() {
	for _, h := range hs.list {
		h.Drop()
	}
	hs.list = nil
}

// Len returns the number of collected handles.
func (hs *Handles) Len() int {
	return len(hs.list)
}
