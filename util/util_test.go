package util

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(2), Min(2, 3))
	assert.Equal(uint64(2), Min(3, 2))
	assert.Equal(uint64(2), Min(2, 2))
}

func TestRoundUp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(4), RoundUp(10, 3))
	assert.Equal(uint64(3), RoundUp(9, 3), "exact division")
	assert.Equal(uint64(0), RoundUp(0, 3))
	assert.Equal(uint64(2), RoundUp(512+1, 512), "round up by sz-1")
}

func TestSumOverflows(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(false, SumOverflows(1<<31, 1<<31))
	assert.Equal(false, SumOverflows(1<<64-2, 1))
	assert.Equal(true, SumOverflows(1, 1<<64-1))
	assert.Equal(true, SumOverflows(1<<63, 1<<63))
}

func TestDPrintfThreshold(t *testing.T) {
	assert := assert.New(t)
	hook := test.NewGlobal()
	defer hook.Reset()
	oldLevel := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(oldLevel)
	defer SetDebug(Debug)

	SetDebug(1)
	DPrintf(1, "inode %d", 7)
	DPrintf(2, "block %d", 30)
	if assert.Len(hook.AllEntries(), 1) {
		assert.Equal("inode 7", hook.LastEntry().Message)
		assert.Equal(logrus.DebugLevel, hook.LastEntry().Level)
	}
}
