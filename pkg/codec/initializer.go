package codec

import "fmt"

// SetupCodec translates a generic encoder configuration and its stream
// list into a codec specific descriptor and picks the matching bitrate
// allocator. Malformed input is a caller bug and panics, the only
// recoverable failure is the multiplex path.
func SetupCodec(config EncoderConfig, streams []VideoStream, nackEnabled bool) (*VideoCodec, BitrateAllocator, error) {
	videoCodec, err := BuildVideoCodec(config, streams, nackEnabled)
	if err != nil {
		return nil, nil, err
	}
	return videoCodec, NewBitrateAllocator(videoCodec), nil
}

// BuildVideoCodec resolves the effective codec type and runs the
// translation. The multiplex type is configured as VP9 through a single
// bounded recursion and relabeled afterwards.
func BuildVideoCodec(config EncoderConfig, streams []VideoStream, nackEnabled bool) (*VideoCodec, error) {
	codecType := config.CodecType
	if codecType == CodecUnknown {
		codecType = PayloadStringToCodecType(config.PayloadName)
	}

	if codecType == CodecMultiplex {
		associated := config
		associated.CodecType = CodecVP9
		videoCodec, err := buildAssociatedCodec(associated, streams, nackEnabled)
		if err != nil {
			Logger.Error(err, "failed to build multiplex encoder configuration")
			return nil, err
		}
		videoCodec.CodecType = CodecMultiplex
		return videoCodec, nil
	}

	return buildVideoCodec(config, streams, codecType, nackEnabled), nil
}

// buildAssociatedCodec runs the translation for the codec a composite
// type is built on. Contract violations inside this one call surface as
// an error instead of aborting, the composite caller cannot vouch for
// the derived configuration.
func buildAssociatedCodec(config EncoderConfig, streams []VideoStream, nackEnabled bool) (videoCodec *VideoCodec, err error) {
	defer func() {
		if r := recover(); r != nil {
			videoCodec = nil
			err = fmt.Errorf("%w: %v", ErrMultiplexSetup, r)
		}
	}()
	videoCodec, err = BuildVideoCodec(config, streams, nackEnabled)
	return
}

// buildVideoCodec is the direct translation path. It cannot fail, any
// contract violation in the input panics.
func buildVideoCodec(config EncoderConfig, streams []VideoStream, codecType CodecType, nackEnabled bool) *VideoCodec {
	if len(streams) == 0 {
		panic("codec: empty stream list")
	}
	if len(streams) > MaxSimulcastStreams {
		panic(fmt.Sprintf("codec: %d simulcast streams, the maximum is %d", len(streams), MaxSimulcastStreams))
	}
	if config.MinTransmitBitrateBps < 0 {
		panic("codec: negative min transmit bitrate")
	}

	videoCodec := &VideoCodec{
		CodecType: codecType,
		TimingFrameThresholds: TimingFrameThresholds{
			DelayMs:                 defaultTimingFramesDelayMs,
			OutlierFrameSizePercent: defaultOutlierFrameSizePercent,
		},
	}

	switch config.ContentType {
	case ContentRealtimeVideo:
		videoCodec.Mode = ModeRealtimeVideo
	case ContentScreen:
		videoCodec.Mode = ModeScreensharing
		if tl := streams[0].NumTemporalLayers; tl != nil && *tl == 2 {
			// Legacy accommodation for the two temporal layer
			// screenshare setup, nothing in the translation reads it.
			videoCodec.TargetBitrate = uint32(streams[0].TargetBitrateBps / 1000)
		}
	}

	if streams[0].MaxFramerate <= 0 {
		panic("codec: non-positive framerate")
	}
	videoCodec.MaxFramerate = uint32(streams[0].MaxFramerate)

	videoCodec.NumberOfSimulcastStreams = len(streams)
	videoCodec.MinBitrate = uint32(streams[0].MinBitrateBps / 1000)

	for i, stream := range streams {
		if stream.Width <= 0 || stream.Height <= 0 {
			panic("codec: non-positive stream dimensions")
		}
		if stream.MaxFramerate <= 0 {
			panic("codec: non-positive framerate")
		}
		// Per stream framerates are not supported, except for
		// screenshare where a simulcast encoder adapter handles the
		// divergence downstream.
		if config.ContentType != ContentScreen && stream.MaxFramerate != streams[0].MaxFramerate {
			panic("codec: divergent stream framerates")
		}
		if stream.MinBitrateBps < 0 || stream.TargetBitrateBps < stream.MinBitrateBps ||
			stream.MaxBitrateBps < stream.TargetBitrateBps {
			panic("codec: stream bitrates must satisfy min <= target <= max")
		}
		if stream.MaxQP < 0 {
			panic("codec: negative max QP")
		}

		numTemporalLayers := 1
		if stream.NumTemporalLayers != nil {
			numTemporalLayers = *stream.NumTemporalLayers
		}
		videoCodec.SimulcastStreams[i] = SimulcastStream{
			Width:                  uint16(stream.Width),
			Height:                 uint16(stream.Height),
			MinBitrate:             uint32(stream.MinBitrateBps / 1000),
			TargetBitrate:          uint32(stream.TargetBitrateBps / 1000),
			MaxBitrate:             uint32(stream.MaxBitrateBps / 1000),
			QPMax:                  uint32(stream.MaxQP),
			NumberOfTemporalLayers: uint8(numTemporalLayers),
			Active:                 stream.Active,
		}

		if uint16(stream.Width) > videoCodec.Width {
			videoCodec.Width = uint16(stream.Width)
		}
		if uint16(stream.Height) > videoCodec.Height {
			videoCodec.Height = uint16(stream.Height)
		}
		if uint32(stream.MinBitrateBps/1000) < videoCodec.MinBitrate {
			videoCodec.MinBitrate = uint32(stream.MinBitrateBps / 1000)
		}
		videoCodec.MaxBitrate += uint32(stream.MaxBitrateBps / 1000)
		if uint32(stream.MaxQP) > videoCodec.QPMax {
			videoCodec.QPMax = uint32(stream.MaxQP)
		}
		if stream.Active {
			videoCodec.Active = true
		}
	}

	if videoCodec.MinBitrate < minEncoderBitrateKbps {
		videoCodec.MinBitrate = minEncoderBitrateKbps
	}
	if videoCodec.MaxBitrate == 0 {
		// Unset max bitrate, cap to one bit per pixel.
		videoCodec.MaxBitrate = uint32(videoCodec.Width) * uint32(videoCodec.Height) *
			videoCodec.MaxFramerate / 1000
	}
	if videoCodec.MaxBitrate < minEncoderBitrateKbps {
		videoCodec.MaxBitrate = minEncoderBitrateKbps
	}

	applyCodecSpecifics(videoCodec, config, streams, nackEnabled)

	return videoCodec
}

// applyCodecSpecifics resolves the extension block and the per codec
// layering rules on a descriptor whose aggregate fields are final.
func applyCodecSpecifics(videoCodec *VideoCodec, config EncoderConfig, streams []VideoStream, nackEnabled bool) {
	switch videoCodec.CodecType {
	case CodecVP8:
		vp8 := DefaultVP8Settings()
		if config.EncoderSettings != nil {
			supplied, ok := config.EncoderSettings.(*VP8Settings)
			if !ok {
				panic("codec: VP8 codec with non-VP8 encoder settings")
			}
			vp8 = supplied.clone().(*VP8Settings)
		}
		videoCodec.settings = vp8

		if tl := streams[len(streams)-1].NumTemporalLayers; tl != nil {
			vp8.NumberOfTemporalLayers = uint8(*tl)
		}
		checkTemporalLayerBound(vp8.NumberOfTemporalLayers)

		if nackEnabled && vp8.NumberOfTemporalLayers == 1 {
			Logger.Info("no temporal layers and nack enabled, resilience off")
			vp8.Resilience = ResilienceOff
		}

	case CodecVP9:
		vp9 := DefaultVP9Settings()
		explicitSettings := config.EncoderSettings != nil
		if explicitSettings {
			supplied, ok := config.EncoderSettings.(*VP9Settings)
			if !ok {
				panic("codec: VP9 codec with non-VP9 encoder settings")
			}
			vp9 = supplied.clone().(*VP9Settings)
		}
		videoCodec.settings = vp9

		if tl := streams[len(streams)-1].NumTemporalLayers; tl != nil {
			vp9.NumberOfTemporalLayers = uint8(*tl)
		}
		checkTemporalLayerBound(vp9.NumberOfTemporalLayers)

		if videoCodec.Mode == ModeScreensharing && explicitSettings {
			vp9.FlexibleMode = true
			// Screenshare SVC has a fixed shape for now, 1 temporal and
			// 2 spatial layers.
			if vp9.NumberOfTemporalLayers != 1 {
				panic("codec: VP9 screenshare requires 1 temporal layer")
			}
			if vp9.NumberOfSpatialLayers != 2 {
				panic("codec: VP9 screenshare requires 2 spatial layers")
			}
			break
		}

		var spatialLayers []SpatialLayer
		if len(config.SpatialLayers) > 0 {
			if explicitSettings && len(config.SpatialLayers) != int(vp9.NumberOfSpatialLayers) {
				panic("codec: spatial layer override count does not match VP9 settings")
			}
			spatialLayers = config.SpatialLayers
		} else {
			spatialLayers = SVCConfig(videoCodec.Width, videoCodec.Height,
				vp9.NumberOfSpatialLayers, vp9.NumberOfTemporalLayers)
		}
		if len(spatialLayers) == 0 {
			panic("codec: empty spatial layer list")
		}
		if len(spatialLayers) > MaxSpatialLayers {
			panic(fmt.Sprintf("codec: %d spatial layers, the maximum is %d", len(spatialLayers), MaxSpatialLayers))
		}
		copy(videoCodec.SpatialLayers[:], spatialLayers)

		vp9.NumberOfSpatialLayers = uint8(len(spatialLayers))
		// Spatial layers may disagree on temporal layering, the top
		// layer wins.
		vp9.NumberOfTemporalLayers = spatialLayers[len(spatialLayers)-1].NumberOfTemporalLayers
		checkTemporalLayerBound(vp9.NumberOfTemporalLayers)

		if nackEnabled && vp9.NumberOfTemporalLayers == 1 && vp9.NumberOfSpatialLayers == 1 {
			Logger.Info("no temporal or spatial layers and nack enabled, resilience off")
			vp9.ResilienceOn = false
		}

	case CodecH264:
		h264 := DefaultH264Settings()
		if config.EncoderSettings != nil {
			supplied, ok := config.EncoderSettings.(*H264Settings)
			if !ok {
				panic("codec: H264 codec with non-H264 encoder settings")
			}
			h264 = supplied.clone().(*H264Settings)
		}
		videoCodec.settings = h264

	default:
		if config.EncoderSettings != nil {
			panic(fmt.Sprintf("codec: encoder settings for %s not wired up", videoCodec.CodecType))
		}
	}
}

func checkTemporalLayerBound(numTemporalLayers uint8) {
	if numTemporalLayers < 1 || numTemporalLayers > MaxTemporalStreams {
		panic(fmt.Sprintf("codec: %d temporal layers, must be in [1, %d]", numTemporalLayers, MaxTemporalStreams))
	}
}
