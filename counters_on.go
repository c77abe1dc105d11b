//go:build counters

package pathmap

import "sync/atomic"

// Counters reports process-wide node allocation activity, built only
// under the counters tag since tracking them costs an atomic increment
// on every node allocation, promotion, and clone-on-write.
type Counters struct {
	NodesCreated  int64
	Promotions    int64
	ClonesOnWrite int64
}

var (
	nodesCreated  atomic.Int64
	promotions    atomic.Int64
	clonesOnWrite atomic.Int64
)

// ReadCounters returns a snapshot of the process-wide counters.
func ReadCounters() Counters {
	return Counters{
		NodesCreated:  nodesCreated.Load(),
		Promotions:    promotions.Load(),
		ClonesOnWrite: clonesOnWrite.Load(),
	}
}

func countNodeCreated()  { nodesCreated.Add(1) }
func countPromotion()    { promotions.Add(1) }
func countCloneOnWrite() { clonesOnWrite.Add(1) }
