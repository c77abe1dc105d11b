package pathmap

import (
	"bytes"
	"encoding/binary"
)

// RangeInt is the set of fixed-width integer types Range can encode as a
// key. Range needs a type whose byte width is known at compile time, so
// it does not accept plain int/uint (whose size is platform-dependent).
type RangeInt interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Range builds a Map whose keys are order's (big- or little-endian, via
// binary.BigEndian/binary.LittleEndian) fixed-width encoding of every
// term of the arithmetic sequence start, start+step, start+2*step, ...
// up to but excluding stop, each mapped to the same value. step of zero
// yields an empty map rather than looping forever.
func Range[I RangeInt, V any](order binary.ByteOrder, start, stop, step I, value V) *Map[V] {
	m := New[V]()
	if step == 0 {
		return m
	}
	for cur := start; inRange(cur, stop, step); {
		m.Insert(encodeRangeKey(order, cur), value)
		next := cur + step
		if (step > 0) != (next > cur) {
			break // the next term would wrap around I's range
		}
		cur = next
	}
	return m
}

func inRange[I RangeInt](cur, stop, step I) bool {
	if step > 0 {
		return cur < stop
	}
	return cur > stop
}

func encodeRangeKey[I RangeInt](order binary.ByteOrder, v I) []byte {
	var buf bytes.Buffer
	// binary.Write's reflect-based path covers every type in RangeInt's
	// constraint; the buffer never needs more than 8 bytes.
	_ = binary.Write(&buf, order, v)
	return buf.Bytes()
}
