package util

import (
	"github.com/sirupsen/logrus"
)

// Debug is the DPrintf threshold: messages above it are dropped.
var Debug uint64 = 0

func SetDebug(level uint64) {
	Debug = level
}

func DPrintf(level uint64, format string, a ...interface{}) {
	if level <= Debug {
		logrus.Debugf(format, a...)
	}
}

func RoundUp(n uint64, sz uint64) uint64 {
	return (n + sz - 1) / sz
}

func Min(n uint64, m uint64) uint64 {
	if n < m {
		return n
	} else {
		return m
	}
}

// SumOverflows reports whether n+m wraps around.
func SumOverflows(n uint64, m uint64) bool {
	return n+m < n
}
