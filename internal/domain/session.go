package domain

// Session guard. At most one non-intermittent task and at most one
// intermittent task may be active at the same time. The intermittent slot is
// a deliberate carve-out for side work: starting an intermittent task does
// not pause or mutate the main task in any way.

// AssertCanStart returns nil when the requested task may start under the
// single-active-task invariant, or an ActiveSessionExistsError when another
// task already occupies the slot the request needs.
func (g *Graph) AssertCanStart(requested *TaskRef) error {
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				if !t.Status.IsActive() || t.ID == requested.ID {
					continue
				}
				// A main task only conflicts with another main task, and
				// an intermittent one only with another intermittent one.
				if t.Intermittent == requested.Intermittent {
					return &ActiveSessionExistsError{ActiveID: t.ID, RequestedID: requested.ID}
				}
			}
		}
	}
	return nil
}
