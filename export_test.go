package lq

// Check verifies the structural invariants of q's chain.
func (q *Queue) Check() error {
	return q.list.Check()
}
