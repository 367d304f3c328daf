package codec

// svcRateScalingFactor is the geometric decay between SVC spatial
// layers, the base layer gets the largest share.
const svcRateScalingFactor = 0.55

// SVCAllocator distributes a target bitrate over the spatial layers of
// a VP9 descriptor. It keeps as many layers as the target can pay the
// minimum rate for, splits the rest geometrically and clamps every
// layer into its own bounds, overflow cascades upward.
type SVCAllocator struct {
	codec *VideoCodec
}

// NewSVCAllocator creates an SVC aware allocator bound to one
// descriptor.
func NewSVCAllocator(videoCodec *VideoCodec) *SVCAllocator {
	return &SVCAllocator{codec: videoCodec}
}

func (s *SVCAllocator) Allocate(totalBitrateBps uint32) BitrateAllocation {
	var alloc BitrateAllocation
	c := s.codec

	numSpatialLayers := int(c.VP9().NumberOfSpatialLayers)
	if numSpatialLayers <= 1 {
		rate := clampBitrate(totalBitrateBps, c.MinBitrate*1000, c.MaxBitrate*1000)
		distributeTemporal(&alloc, 0, c.numberOfTemporalLayers(), rate)
		return alloc
	}

	layers := c.SpatialLayers[:numSpatialLayers]

	// Deactivate top layers the target cannot pay the minimum rate for,
	// at least the base layer is always kept.
	numDeliverable := 1
	minSum := layers[0].MinBitrate * 1000
	for sl := 1; sl < numSpatialLayers; sl++ {
		minSum += layers[sl].MinBitrate * 1000
		if minSum > totalBitrateBps {
			break
		}
		numDeliverable = sl + 1
	}

	rates := splitByScalingFactor(totalBitrateBps, numDeliverable)

	// Clamp into the per layer bounds, base layer first. Overflow from
	// a capped layer is offered to the next one up.
	var spill uint32
	for sl := 0; sl < numDeliverable; sl++ {
		rate := rates[sl] + spill
		clamped := clampBitrate(rate, layers[sl].MinBitrate*1000, layers[sl].MaxBitrate*1000)
		spill = 0
		if clamped < rate {
			spill = rate - clamped
		}
		distributeTemporal(&alloc, sl, int(layers[sl].NumberOfTemporalLayers), clamped)
	}
	return alloc
}

// splitByScalingFactor splits a total rate over numLayers with a
// geometric decay, layer i receives factor^i of the base layer share.
func splitByScalingFactor(totalBitrateBps uint32, numLayers int) []uint32 {
	var denominator float64
	factor := 1.0
	for i := 0; i < numLayers; i++ {
		denominator += factor
		factor *= svcRateScalingFactor
	}

	rates := make([]uint32, numLayers)
	factor = 1.0
	for i := 0; i < numLayers; i++ {
		rates[i] = uint32(float64(totalBitrateBps) * factor / denominator)
		factor *= svcRateScalingFactor
	}
	return rates
}
