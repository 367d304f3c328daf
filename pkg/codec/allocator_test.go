package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitrateAllocator(t *testing.T) {
	tests := []struct {
		name      string
		codecType CodecType
		settings  EncoderSettings
		wantType  interface{}
	}{
		{"vp8 gets simulcast", CodecVP8, DefaultVP8Settings(), &SimulcastAllocator{}},
		{"vp9 gets svc", CodecVP9, DefaultVP9Settings(), &SVCAllocator{}},
		{"h264 gets default", CodecH264, DefaultH264Settings(), &DefaultAllocator{}},
		{"multiplex gets default", CodecMultiplex, DefaultVP9Settings(), &DefaultAllocator{}},
		{"generic gets default", CodecGeneric, nil, &DefaultAllocator{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			videoCodec := &VideoCodec{CodecType: tt.codecType, settings: tt.settings}
			assert.IsType(t, tt.wantType, NewBitrateAllocator(videoCodec))
		})
	}
}

func TestBitrateAllocation(t *testing.T) {
	var alloc BitrateAllocation
	alloc.SetBitrate(0, 0, 100000)
	alloc.SetBitrate(0, 1, 50000)
	alloc.SetBitrate(1, 0, 200000)

	assert.Equal(t, uint32(100000), alloc.GetBitrate(0, 0))
	assert.Equal(t, uint32(150000), alloc.GetSpatialLayerSum(0))
	assert.Equal(t, uint32(350000), alloc.Sum())

	// Replacing keeps the sum consistent.
	alloc.SetBitrate(0, 0, 80000)
	assert.Equal(t, uint32(330000), alloc.Sum())

	assert.Panics(t, func() {
		alloc.SetBitrate(MaxSpatialLayers, 0, 1)
	})
}

func TestDistributeTemporal(t *testing.T) {
	tests := []struct {
		name      string
		layers    int
		bitrate   uint32
		wantRates []uint32
	}{
		{"one layer", 1, 1000000, []uint32{1000000}},
		{"two layers", 2, 1000000, []uint32{600000, 400000}},
		{"three layers", 3, 1000000, []uint32{400000, 200000, 400000}},
		{"four layers", 4, 1000000, []uint32{250000, 150000, 200000, 400000}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var alloc BitrateAllocation
			distributeTemporal(&alloc, 0, tt.layers, tt.bitrate)
			for tl, want := range tt.wantRates {
				assert.Equal(t, want, alloc.GetBitrate(0, tl), "temporal layer %d", tl)
			}
			assert.Equal(t, tt.bitrate, alloc.Sum())
		})
	}
}

func TestDefaultAllocator(t *testing.T) {
	videoCodec := &VideoCodec{CodecType: CodecH264, MinBitrate: 30, MaxBitrate: 900}
	allocator := NewDefaultAllocator(videoCodec)

	tests := []struct {
		name   string
		target uint32
		want   uint32
	}{
		{"within bounds", 100000, 100000},
		{"raised to min", 10000, 30000},
		{"capped at max", 2000000, 900000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			alloc := allocator.Allocate(tt.target)
			assert.Equal(t, tt.want, alloc.GetBitrate(0, 0))
			assert.Equal(t, tt.want, alloc.Sum())
		})
	}
}

func TestSimulcastAllocator(t *testing.T) {
	videoCodec, err := BuildVideoCodec(EncoderConfig{PayloadName: "VP8"}, twoSimulcastStreams(), false)
	require.NoError(t, err)
	allocator := NewSimulcastAllocator(videoCodec)

	t.Run("pays minimums then targets then tops up the high stream", func(t *testing.T) {
		alloc := allocator.Allocate(1000000)
		assert.Equal(t, uint32(200000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(600000), alloc.GetSpatialLayerSum(1))
	})

	t.Run("drops the high stream when its minimum cannot be paid", func(t *testing.T) {
		alloc := allocator.Allocate(180000)
		assert.Equal(t, uint32(180000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(0), alloc.GetSpatialLayerSum(1))
	})

	t.Run("base stream always runs at its minimum", func(t *testing.T) {
		alloc := allocator.Allocate(50000)
		assert.Equal(t, uint32(100000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(0), alloc.GetSpatialLayerSum(1))
	})

	t.Run("never exceeds the per stream maximums", func(t *testing.T) {
		alloc := allocator.Allocate(5000000)
		// Low streams stay at their target, only the top stream is
		// topped up, capped at its maximum.
		assert.Equal(t, uint32(200000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(600000), alloc.GetSpatialLayerSum(1))
	})

	t.Run("inactive streams get nothing", func(t *testing.T) {
		streams := twoSimulcastStreams()
		streams[0].Active = false
		inactiveCodec, err := BuildVideoCodec(EncoderConfig{PayloadName: "VP8"}, streams, false)
		require.NoError(t, err)
		alloc := NewSimulcastAllocator(inactiveCodec).Allocate(1000000)
		assert.Equal(t, uint32(0), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(600000), alloc.GetSpatialLayerSum(1))
	})

	t.Run("single stream is clamped into the aggregate bounds", func(t *testing.T) {
		single, err := BuildVideoCodec(EncoderConfig{PayloadName: "VP8"}, twoSimulcastStreams()[:1], false)
		require.NoError(t, err)
		alloc := NewSimulcastAllocator(single).Allocate(10000)
		assert.Equal(t, single.MinBitrate*1000, alloc.Sum())
	})
}

func TestSVCAllocator(t *testing.T) {
	videoCodec := &VideoCodec{
		CodecType:  CodecVP9,
		MinBitrate: 100,
		MaxBitrate: 900,
		settings:   &VP9Settings{NumberOfSpatialLayers: 2, NumberOfTemporalLayers: 1},
	}
	videoCodec.SpatialLayers[0] = SpatialLayer{
		Width: 640, Height: 360, MinBitrate: 100, TargetBitrate: 200, MaxBitrate: 300,
		NumberOfTemporalLayers: 1, Active: true,
	}
	videoCodec.SpatialLayers[1] = SpatialLayer{
		Width: 1280, Height: 720, MinBitrate: 200, TargetBitrate: 400, MaxBitrate: 600,
		NumberOfTemporalLayers: 1, Active: true,
	}
	allocator := NewSVCAllocator(videoCodec)

	t.Run("splits over both layers and caps at the maximums", func(t *testing.T) {
		alloc := allocator.Allocate(1000000)
		assert.Equal(t, uint32(300000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(600000), alloc.GetSpatialLayerSum(1))
	})

	t.Run("drops the top layer when its minimum cannot be paid", func(t *testing.T) {
		alloc := allocator.Allocate(250000)
		assert.Equal(t, uint32(250000), alloc.GetSpatialLayerSum(0))
		assert.Equal(t, uint32(0), alloc.GetSpatialLayerSum(1))
	})

	t.Run("base layer share is the largest", func(t *testing.T) {
		alloc := allocator.Allocate(400000)
		assert.True(t, alloc.GetSpatialLayerSum(0) > alloc.GetSpatialLayerSum(1))
	})

	t.Run("single spatial layer is clamped into the aggregate bounds", func(t *testing.T) {
		streams := []VideoStream{{
			Width: 1280, Height: 720, MaxFramerate: 30,
			MinBitrateBps: 150000, TargetBitrateBps: 400000, MaxBitrateBps: 600000,
			Active: true,
		}}
		single, err := BuildVideoCodec(EncoderConfig{PayloadName: "VP9"}, streams, false)
		require.NoError(t, err)
		alloc := NewSVCAllocator(single).Allocate(2000000)
		assert.Equal(t, single.MaxBitrate*1000, alloc.Sum())
	})
}
