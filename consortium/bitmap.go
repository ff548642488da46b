package consortium

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/lombard-finance/lbtc-core/types"
)

// Bitmap records which validator indices signed a payload. Its capacity is
// fixed to the largest allowed validator set so every record has the same
// shape regardless of the epoch it was collected in.
type Bitmap struct {
	bits *bitset.BitSet
}

func NewBitmap() *Bitmap {
	return &Bitmap{bits: bitset.New(types.MaxValidatorSetSize)}
}

// BitmapFromWords restores a bitmap from its persisted words.
func BitmapFromWords(words []uint64) *Bitmap {
	if len(words) == 0 {
		return NewBitmap()
	}
	cp := make([]uint64, len(words))
	copy(cp, words)
	return &Bitmap{bits: bitset.From(cp)}
}

func (b *Bitmap) Test(idx uint) bool {
	return b.bits.Test(idx)
}

func (b *Bitmap) Set(idx uint) {
	b.bits.Set(idx)
}

func (b *Bitmap) Count() uint {
	return b.bits.Count()
}

// Indices lists the set bits in ascending order.
func (b *Bitmap) Indices() []uint {
	out := make([]uint, 0, b.bits.Count())
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

// Words returns a copy of the underlying words for persistence.
func (b *Bitmap) Words() []uint64 {
	words := b.bits.Bytes()
	cp := make([]uint64, len(words))
	copy(cp, words)
	return cp
}
