// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"github.com/addrummond/heap"
)

type sizeCursor struct {
	points []SizedValue
	next   int
}

func (a *sizeCursor) Cmp(b *sizeCursor) int {
	return a.points[a.next].Size.Compare(b.points[b.next].Size)
}

// mergeSizes returns the distinct sizes of every list in ascending order. Each
// list must already be ascending, as AggregateSingleNode leaves them.
func mergeSizes(lists ...[]SizedValue) []Size {
	var h heap.Heap[sizeCursor, heap.Min]
	for _, l := range lists {
		if len(l) > 0 {
			heap.PushOrderable(&h, sizeCursor{points: l})
		}
	}
	var sizes []Size
	for {
		c, ok := heap.PopOrderable(&h)
		if !ok {
			return sizes
		}
		if s := c.points[c.next].Size; len(sizes) == 0 || sizes[len(sizes)-1] != s {
			sizes = append(sizes, s)
		}
		if c.next++; c.next < len(c.points) {
			heap.PushOrderable(&h, c)
		}
	}
}
