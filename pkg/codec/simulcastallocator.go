package codec

// SimulcastAllocator distributes a target bitrate over the simulcast
// streams of a VP8 descriptor. Active streams are paid their minimum
// rate lowest stream first, then filled toward their target, the
// remainder goes to the highest active stream up to its maximum.
type SimulcastAllocator struct {
	codec *VideoCodec
}

// NewSimulcastAllocator creates a simulcast aware allocator bound to
// one descriptor.
func NewSimulcastAllocator(videoCodec *VideoCodec) *SimulcastAllocator {
	return &SimulcastAllocator{codec: videoCodec}
}

func (s *SimulcastAllocator) Allocate(totalBitrateBps uint32) BitrateAllocation {
	var alloc BitrateAllocation
	c := s.codec

	if c.NumberOfSimulcastStreams <= 1 {
		rate := clampBitrate(totalBitrateBps, c.MinBitrate*1000, c.MaxBitrate*1000)
		distributeTemporal(&alloc, 0, c.numberOfTemporalLayers(), rate)
		return alloc
	}

	streams := c.SimulcastStreams[:c.NumberOfSimulcastStreams]
	layerRates := make([]uint32, len(streams))
	paid := make([]bool, len(streams))

	// The base stream is always payable, the encoder cannot run below
	// the aggregate minimum anyway.
	left := totalBitrateBps
	if left < c.MinBitrate*1000 {
		left = c.MinBitrate * 1000
	}

	// Minimum rates first, an active stream either gets its minimum or
	// nothing at all.
	for i, stream := range streams {
		if !stream.Active {
			continue
		}
		min := stream.MinBitrate * 1000
		if left < min {
			break
		}
		layerRates[i] = min
		paid[i] = true
		left -= min
	}

	// Fill toward the per stream targets in order.
	for i, stream := range streams {
		if !paid[i] {
			continue
		}
		want := stream.TargetBitrate*1000 - layerRates[i]
		if want > left {
			want = left
		}
		layerRates[i] += want
		left -= want
	}

	// Whatever is left goes to the highest paid stream, capped at its
	// maximum.
	for i := len(streams) - 1; i >= 0 && left > 0; i-- {
		if !paid[i] {
			continue
		}
		headroom := streams[i].MaxBitrate*1000 - layerRates[i]
		if headroom > left {
			headroom = left
		}
		layerRates[i] += headroom
		break
	}

	for i, rate := range layerRates {
		if !paid[i] {
			continue
		}
		distributeTemporal(&alloc, i, int(streams[i].NumberOfTemporalLayers), rate)
	}
	return alloc
}
