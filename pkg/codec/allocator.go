package codec

// BitrateAllocation is a per spatial/temporal layer split of a total
// target bitrate, in bps. For simulcast codecs the spatial index is the
// simulcast stream index.
type BitrateAllocation struct {
	bitrates [MaxSpatialLayers][MaxTemporalStreams]uint32
	sum      uint32
}

// SetBitrate sets the rate of one layer, replacing any previous value.
func (a *BitrateAllocation) SetBitrate(spatialIndex, temporalIndex int, bitrateBps uint32) {
	if spatialIndex < 0 || spatialIndex >= MaxSpatialLayers ||
		temporalIndex < 0 || temporalIndex >= MaxTemporalStreams {
		panic("codec: bitrate allocation index out of range")
	}
	a.sum -= a.bitrates[spatialIndex][temporalIndex]
	a.bitrates[spatialIndex][temporalIndex] = bitrateBps
	a.sum += bitrateBps
}

// GetBitrate returns the rate of one layer.
func (a *BitrateAllocation) GetBitrate(spatialIndex, temporalIndex int) uint32 {
	return a.bitrates[spatialIndex][temporalIndex]
}

// GetSpatialLayerSum returns the rate of one spatial layer across its
// temporal layers.
func (a *BitrateAllocation) GetSpatialLayerSum(spatialIndex int) uint32 {
	var sum uint32
	for _, rate := range a.bitrates[spatialIndex] {
		sum += rate
	}
	return sum
}

// Sum returns the total allocated rate.
func (a *BitrateAllocation) Sum() uint32 {
	return a.sum
}

// BitrateAllocator splits a total target bitrate over the layers of the
// codec descriptor it was created for.
type BitrateAllocator interface {
	Allocate(totalBitrateBps uint32) BitrateAllocation
}

// NewBitrateAllocator picks the allocation strategy for a descriptor.
// VP8 gets the simulcast aware strategy, VP9 the SVC aware one and
// every other codec the default single layer strategy.
func NewBitrateAllocator(videoCodec *VideoCodec) BitrateAllocator {
	switch videoCodec.CodecType {
	case CodecVP8:
		return NewSimulcastAllocator(videoCodec)
	case CodecVP9:
		return NewSVCAllocator(videoCodec)
	default:
		return NewDefaultAllocator(videoCodec)
	}
}

// temporalRateAllocation holds the cumulative rate fraction assigned to
// the temporal layers up to an index, per temporal layer count.
var temporalRateAllocation = [MaxTemporalStreams][MaxTemporalStreams]float64{
	{1.0},
	{0.6, 1.0},
	{0.4, 0.6, 1.0},
	{0.25, 0.4, 0.6, 1.0},
}

// distributeTemporal splits one spatial/simulcast layer's rate over its
// temporal layers using the cumulative fraction table.
func distributeTemporal(alloc *BitrateAllocation, spatialIndex, numTemporalLayers int, bitrateBps uint32) {
	if numTemporalLayers < 1 {
		numTemporalLayers = 1
	}
	if numTemporalLayers > MaxTemporalStreams {
		numTemporalLayers = MaxTemporalStreams
	}
	fractions := temporalRateAllocation[numTemporalLayers-1]
	var allocated uint32
	for tl := 0; tl < numTemporalLayers; tl++ {
		cumulative := uint32(fractions[tl] * float64(bitrateBps))
		alloc.SetBitrate(spatialIndex, tl, cumulative-allocated)
		allocated = cumulative
	}
}

func clampBitrate(bitrateBps, minBps, maxBps uint32) uint32 {
	if bitrateBps < minBps {
		return minBps
	}
	if bitrateBps > maxBps {
		return maxBps
	}
	return bitrateBps
}
