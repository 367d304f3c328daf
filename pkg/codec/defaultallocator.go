package codec

// DefaultAllocator clamps the target into the descriptor's aggregate
// bounds and assigns it whole to the base layer. Used for codecs
// without simulcast or SVC rate semantics.
type DefaultAllocator struct {
	codec *VideoCodec
}

// NewDefaultAllocator creates a single layer allocator bound to one
// descriptor.
func NewDefaultAllocator(videoCodec *VideoCodec) *DefaultAllocator {
	return &DefaultAllocator{codec: videoCodec}
}

func (d *DefaultAllocator) Allocate(totalBitrateBps uint32) BitrateAllocation {
	var alloc BitrateAllocation
	rate := clampBitrate(totalBitrateBps, d.codec.MinBitrate*1000, d.codec.MaxBitrate*1000)
	alloc.SetBitrate(0, 0, rate)
	return alloc
}
