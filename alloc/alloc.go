package alloc

import (
	"sync"

	"github.com/RobertReece/os-project3-fscheck/util"
)

// Allocator uses a bit map to allocate and free numbers. Bit 0
// corresponds to number 0, bit 1 to 1, and so on. Number 0 is never handed
// out.
type Alloc struct {
	mu     *sync.Mutex
	next   uint64 // first number to try
	max    uint64
	bitmap []byte
}

// MkMaxAlloc makes an allocator for the numbers [0, max) with everything
// but 0 free.
func MkMaxAlloc(max uint64) *Alloc {
	a := &Alloc{
		mu:     new(sync.Mutex),
		next:   0,
		max:    max,
		bitmap: make([]byte, util.RoundUp(max, 8)),
	}
	a.MarkUsed(0)
	for n := max; n < uint64(len(a.bitmap))*8; n++ {
		a.MarkUsed(n)
	}
	return a
}

func (a *Alloc) incNext() uint64 {
	a.next = a.next + 1
	if a.next >= a.max {
		a.next = 0
	}
	return a.next
}

// Returns a free number and marks it used, or 0 if everything is in use.
func (a *Alloc) allocBit() uint64 {
	var num uint64
	num = a.incNext()
	start := num
	for {
		bit := num % 8
		i := num / 8
		util.DPrintf(10, "allocBit: s %d num %d byte 0x%x\n", start, num, a.bitmap[i])
		if a.bitmap[i]&(1<<bit) == 0 {
			a.bitmap[i] = a.bitmap[i] | (1 << bit)
			break
		}
		num = a.incNext()
		if num == start {
			return 0
		}
		continue
	}
	return num
}

func (a *Alloc) freeBit(bn uint64) {
	i := bn / 8
	bit := bn % 8
	a.bitmap[i] = a.bitmap[i] & ^(1 << bit)
}

func (a *Alloc) MarkUsed(bn uint64) {
	a.mu.Lock()
	i := bn / 8
	bit := bn % 8
	a.bitmap[i] = a.bitmap[i] | (1 << bit)
	a.mu.Unlock()
}

func (a *Alloc) IsUsed(bn uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bitmap[bn/8]&(1<<(bn%8)) != 0
}

func (a *Alloc) AllocNum() uint64 {
	a.mu.Lock()
	num := a.allocBit()
	a.mu.Unlock()
	return num
}

func (a *Alloc) FreeNum(num uint64) {
	if num == 0 {
		panic("FreeNum")
	}
	if num >= a.max {
		panic("FreeNum: out of range")
	}
	a.mu.Lock()
	a.freeBit(num)
	a.mu.Unlock()
}

func popCnt(b byte) uint64 {
	var count uint64
	var x = b
	for i := uint64(0); i < 8; i++ {
		count += uint64(x & 1)
		x = x >> 1
	}
	return count
}

func (a *Alloc) NumFree() uint64 {
	a.mu.Lock()
	total := 8 * uint64(len(a.bitmap))
	var count uint64
	for _, b := range a.bitmap {
		count += popCnt(b)
	}
	a.mu.Unlock()
	return total - count
}

// Bitmap returns a copy of the allocation bitmap.
func (a *Alloc) Bitmap() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := make([]byte, len(a.bitmap))
	copy(b, a.bitmap)
	return b
}
