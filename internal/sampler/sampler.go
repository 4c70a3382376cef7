// Package sampler pulls frequency snapshots from an analysis node into a
// buffer it owns.
package sampler

// Node is an audio analysis node with a fixed number of frequency bins.
type Node interface {
	FrequencyBinCount() int
	// FillFrequencyData writes the current magnitudes, ascending by frequency,
	// into dst, which has FrequencyBinCount elements.
	FillFrequencyData(dst []uint8)
}

type Sampler struct {
	node Node
	buf  []uint8
}

// New binds a sampler to node. The snapshot length is fixed here.
func New(node Node) *Sampler {
	n := 0
	if node != nil {
		n = node.FrequencyBinCount()
	}
	return &Sampler{node: node, buf: make([]uint8, n)}
}

// Sample refreshes the snapshot in place and returns it. The returned slice is
// reused by the next call.
func (s *Sampler) Sample() []uint8 {
	if s.node != nil {
		s.node.FillFrequencyData(s.buf)
	}
	return s.buf
}

// Snapshot returns the latest snapshot without refreshing it.
func (s *Sampler) Snapshot() []uint8 { return s.buf }

func (s *Sampler) Len() int { return len(s.buf) }
