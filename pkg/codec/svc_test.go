package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVCConfig(t *testing.T) {
	tests := []struct {
		name            string
		width, height   uint16
		spatialLayers   uint8
		temporalLayers  uint8
		wantResolutions [][2]uint16
	}{
		{
			name:            "single layer",
			width:           1280,
			height:          720,
			spatialLayers:   1,
			temporalLayers:  1,
			wantResolutions: [][2]uint16{{1280, 720}},
		},
		{
			name:            "three layers halve the resolution",
			width:           1280,
			height:          720,
			spatialLayers:   3,
			temporalLayers:  2,
			wantResolutions: [][2]uint16{{320, 180}, {640, 360}, {1280, 720}},
		},
		{
			name:           "layer count capped by minimum resolution",
			width:          640,
			height:         360,
			spatialLayers:  3,
			temporalLayers: 2,
			// A third layer would fall below 240x135.
			wantResolutions: [][2]uint16{{320, 180}, {640, 360}},
		},
		{
			name:            "small input keeps one layer",
			width:           160,
			height:          90,
			spatialLayers:   3,
			temporalLayers:  1,
			wantResolutions: [][2]uint16{{160, 90}},
		},
		{
			name:            "zero layer request is raised to one",
			width:           640,
			height:          360,
			spatialLayers:   0,
			temporalLayers:  1,
			wantResolutions: [][2]uint16{{640, 360}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			layers := SVCConfig(tt.width, tt.height, tt.spatialLayers, tt.temporalLayers)
			require.Len(t, layers, len(tt.wantResolutions))
			for i, layer := range layers {
				assert.Equal(t, tt.wantResolutions[i][0], layer.Width)
				assert.Equal(t, tt.wantResolutions[i][1], layer.Height)
				assert.Equal(t, tt.temporalLayers, layer.NumberOfTemporalLayers)
				assert.Equal(t, uint32(svcMaxFramerate), layer.MaxFramerate)
				assert.True(t, layer.Active)
			}
		})
	}
}

func TestSVCConfigBitrateBounds(t *testing.T) {
	layers := SVCConfig(1280, 720, 3, 1)
	require.Len(t, layers, 3)
	for i, layer := range layers {
		assert.True(t, layer.MinBitrate >= svcMinBitrateKbps, "layer %d min", i)
		assert.True(t, layer.MinBitrate <= layer.TargetBitrate, "layer %d min<=target", i)
		assert.True(t, layer.TargetBitrate <= layer.MaxBitrate, "layer %d target<=max", i)
		if i > 0 {
			assert.True(t, layer.MaxBitrate > layers[i-1].MaxBitrate, "layer %d grows", i)
		}
	}
}

func TestSVCConfigPanicsOnZeroDimensions(t *testing.T) {
	assert.Panics(t, func() {
		SVCConfig(0, 720, 1, 1)
	})
}
