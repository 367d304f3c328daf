package codec

import "math"

const (
	// Spatial layers below this resolution are not worth encoding.
	minSpatialLayerWidth  = 240
	minSpatialLayerHeight = 135

	svcMaxFramerate = 30

	svcMinBitrateKbps = 20
)

// SVCConfig derives the SVC spatial layering for an input resolution.
// The top layer runs at the input resolution and every lower layer
// halves width and height. The requested layer count is reduced until
// the bottom layer stays at or above the minimum spatial resolution,
// at least one layer is always produced.
func SVCConfig(inputWidth, inputHeight uint16, numSpatialLayers, numTemporalLayers uint8) []SpatialLayer {
	if inputWidth == 0 || inputHeight == 0 {
		panic("codec: non-positive SVC input dimensions")
	}
	if numSpatialLayers < 1 {
		numSpatialLayers = 1
	}

	numLayers := int(numSpatialLayers)
	for numLayers > 1 {
		shift := uint(numLayers - 1)
		if int(inputWidth)>>shift >= minSpatialLayerWidth &&
			int(inputHeight)>>shift >= minSpatialLayerHeight {
			break
		}
		numLayers--
	}

	spatialLayers := make([]SpatialLayer, 0, numLayers)
	for idx := 0; idx < numLayers; idx++ {
		shift := uint(numLayers - idx - 1)
		width := uint16(int(inputWidth) >> shift)
		height := uint16(int(inputHeight) >> shift)

		minBitrate, targetBitrate, maxBitrate := spatialLayerBitrates(width, height)
		spatialLayers = append(spatialLayers, SpatialLayer{
			Width:                  width,
			Height:                 height,
			MaxFramerate:           svcMaxFramerate,
			MinBitrate:             minBitrate,
			TargetBitrate:          targetBitrate,
			MaxBitrate:             maxBitrate,
			NumberOfTemporalLayers: numTemporalLayers,
			Active:                 true,
		})
	}
	return spatialLayers
}

// spatialLayerBitrates maps a layer resolution to bitrate bounds in
// kbps. Below the min rate quality is unacceptable, above the max rate
// extra bits stop paying off, both grow with the pixel count.
func spatialLayerBitrates(width, height uint16) (minBitrate, targetBitrate, maxBitrate uint32) {
	numPixels := float64(width) * float64(height)

	min := (600*math.Sqrt(numPixels) - 95000) / 1000
	if min < svcMinBitrateKbps {
		min = svcMinBitrateKbps
	}
	max := (1.6*numPixels + 50000) / 1000

	minBitrate = uint32(min)
	maxBitrate = uint32(max)
	targetBitrate = (minBitrate + maxBitrate) / 2
	return minBitrate, targetBitrate, maxBitrate
}
