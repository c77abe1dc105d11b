//go:build !counters

package pathmap

// Counters reports zero under the default build; build with the
// counters tag to have these reflect real activity.
type Counters struct {
	NodesCreated    int64
	Promotions      int64
	ClonesOnWrite   int64
}

// ReadCounters returns the process-wide allocation/promotion counters.
// Under the default build it always reports zero, since tracking them
// costs an atomic increment on every node allocation and promotion.
func ReadCounters() Counters { return Counters{} }

func countNodeCreated()  {}
func countPromotion()    {}
func countCloneOnWrite() {}
