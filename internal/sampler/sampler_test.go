package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNode struct {
	bins  int
	calls int
}

func (n *countingNode) FrequencyBinCount() int { return n.bins }

func (n *countingNode) FillFrequencyData(dst []uint8) {
	n.calls++
	for i := range dst {
		dst[i] = uint8(i + n.calls)
	}
}

func TestSampleRefreshesInPlace(t *testing.T) {
	node := &countingNode{bins: 16}
	s := New(node)
	require.Equal(t, 16, s.Len())

	first := s.Sample()
	require.Len(t, first, 16)
	assert.Equal(t, uint8(1), first[0])

	second := s.Sample()
	assert.Equal(t, uint8(2), second[0])
	assert.Same(t, &first[0], &second[0], "buffer is reused")
	assert.Equal(t, 2, node.calls)
}

func TestSnapshotDoesNotResample(t *testing.T) {
	node := &countingNode{bins: 4}
	s := New(node)
	s.Sample()

	assert.Equal(t, []uint8{1, 2, 3, 4}, s.Snapshot())
	assert.Equal(t, 1, node.calls)
}

func TestNilNodeKeepsBuffer(t *testing.T) {
	s := New(nil)
	assert.Empty(t, s.Sample())
	assert.Zero(t, s.Len())
}
