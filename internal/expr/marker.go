package expr

import "sync/atomic"

// ChangeMarker is the hook consumed by the external change-invalidation
// layer. Update sets it; the invalidation layer queries and clears it when
// deciding whether cached Operation values downstream of the tensor are
// stale. The marker itself carries no versioning: one replaced buffer is one
// pending change regardless of how many times it was replaced in between.
type ChangeMarker struct {
	changed atomic.Bool
}

// Mark records that the tensor's buffer was replaced.
func (m *ChangeMarker) Mark() { m.changed.Store(true) }

// Changed reports whether the buffer was replaced since the last Clear.
func (m *ChangeMarker) Changed() bool { return m.changed.Load() }

// Clear resets the marker after the invalidation layer has observed it.
func (m *ChangeMarker) Clear() { m.changed.Store(false) }
