package models

import (
	"testing"

	"gotest.tools/assert"
)

func TestSignalLogEmpty(t *testing.T) {
	sl := NewSignalLog(0)
	_, ok := sl.Last()
	assert.Assert(t, !ok)
	_, ok = sl.Median()
	assert.Assert(t, !ok)
}

func TestSignalLogLast(t *testing.T) {
	sl := NewSignalLog(0)
	sl.Add(-60)
	sl.Add(-72)
	last, ok := sl.Last()
	assert.Assert(t, ok)
	assert.Equal(t, last, -72)
}

func TestSignalLogEviction(t *testing.T) {
	sl := NewSignalLog(3)
	for _, r := range []int{-50, -55, -60, -65} {
		sl.Add(r)
	}
	assert.DeepEqual(t, sl.GetAll(), []int{-55, -60, -65})
}

func TestSignalLogMedian(t *testing.T) {
	sl := NewSignalLog(0)
	for _, r := range []int{-90, -50, -70} {
		sl.Add(r)
	}
	med, ok := sl.Median()
	assert.Assert(t, ok)
	assert.Equal(t, med, -70)
	// median must not reorder the underlying log
	assert.DeepEqual(t, sl.GetAll(), []int{-90, -50, -70})
}
