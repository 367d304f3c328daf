package codec

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/pion/webrtc/v3"
)

// Logger is the package wide logger. Assign it to get log output from
// the configuration translation, e.g. codec.Logger = logger.New().
var Logger = logr.Discard()

const (
	// MaxSimulcastStreams is the maximum number of simulcast layers a
	// descriptor can carry.
	MaxSimulcastStreams = 4
	// MaxSpatialLayers is the maximum number of SVC spatial layers.
	MaxSpatialLayers = 5
	// MaxTemporalStreams is the maximum number of temporal layers per
	// encoded stream.
	MaxTemporalStreams = 4

	// Encoders misbehave below this rate, it is the floor for both the
	// aggregate min and max bitrate of a descriptor.
	minEncoderBitrateKbps = 30

	defaultTimingFramesDelayMs     = 200
	defaultOutlierFrameSizePercent = 500
)

// CodecType identifies the video codec a descriptor is built for.
type CodecType int

const (
	// CodecUnknown means the codec must be resolved from the legacy
	// payload name.
	CodecUnknown CodecType = iota
	CodecVP8
	CodecVP9
	CodecH264
	// CodecMultiplex is a composite type, internally configured as VP9.
	CodecMultiplex
	CodecGeneric
)

func (t CodecType) String() string {
	switch t {
	case CodecVP8:
		return "VP8"
	case CodecVP9:
		return "VP9"
	case CodecH264:
		return "H264"
	case CodecMultiplex:
		return "Multiplex"
	case CodecGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// PayloadStringToCodecType maps a legacy payload name to a codec type.
// Unrecognized names fall back to the generic codec.
func PayloadStringToCodecType(name string) CodecType {
	switch {
	case strings.EqualFold(name, "VP8"):
		return CodecVP8
	case strings.EqualFold(name, "VP9"):
		return CodecVP9
	case strings.EqualFold(name, "H264"):
		return CodecH264
	case strings.EqualFold(name, "Multiplex"):
		return CodecMultiplex
	}
	return CodecGeneric
}

// MimeTypeToCodecType maps an RTP mime type to a codec type.
func MimeTypeToCodecType(mimeType string) CodecType {
	switch {
	case strings.EqualFold(mimeType, webrtc.MimeTypeVP8):
		return CodecVP8
	case strings.EqualFold(mimeType, webrtc.MimeTypeVP9):
		return CodecVP9
	case strings.EqualFold(mimeType, webrtc.MimeTypeH264):
		return CodecH264
	}
	return CodecGeneric
}

// VideoCodecMode tells the encoder what kind of content it is encoding.
type VideoCodecMode int

const (
	ModeRealtimeVideo VideoCodecMode = iota
	ModeScreensharing
)

func (m VideoCodecMode) String() string {
	if m == ModeScreensharing {
		return "screensharing"
	}
	return "realtime-video"
}

// SimulcastStream describes one simulcast layer of a video codec.
// Bitrates are in kbps.
type SimulcastStream struct {
	Width                  uint16
	Height                 uint16
	MinBitrate             uint32
	TargetBitrate          uint32
	MaxBitrate             uint32
	QPMax                  uint32
	NumberOfTemporalLayers uint8
	Active                 bool
}

// SpatialLayer describes one SVC spatial layer. Bitrates are in kbps.
type SpatialLayer struct {
	Width                  uint16
	Height                 uint16
	MaxFramerate           uint32
	MinBitrate             uint32
	TargetBitrate          uint32
	MaxBitrate             uint32
	QPMax                  uint32
	NumberOfTemporalLayers uint8
	Active                 bool
}

// TimingFrameThresholds control when the encoder emits timing
// information for outlier frames.
type TimingFrameThresholds struct {
	DelayMs                 uint16
	OutlierFrameSizePercent uint16
}

// VideoCodec is the fully resolved, codec specific descriptor handed to
// an encoder and its rate controller. Width, height and framerate are
// the maxima over all simulcast layers, bitrates are aggregates in
// kbps. A descriptor is built once by BuildVideoCodec and not mutated
// afterwards.
type VideoCodec struct {
	CodecType CodecType
	Mode      VideoCodecMode

	Width        uint16
	Height       uint16
	MaxFramerate uint32

	MinBitrate uint32
	MaxBitrate uint32
	// TargetBitrate is only seeded for two temporal layer screenshare,
	// kept for legacy callers.
	TargetBitrate uint32
	QPMax         uint32

	TimingFrameThresholds TimingFrameThresholds

	Active bool

	NumberOfSimulcastStreams int
	SimulcastStreams         [MaxSimulcastStreams]SimulcastStream

	SpatialLayers [MaxSpatialLayers]SpatialLayer

	settings EncoderSettings
}

// Settings returns the codec specific settings block, nil if none was
// resolved.
func (c *VideoCodec) Settings() EncoderSettings {
	return c.settings
}

// VP8 returns the VP8 settings block. It panics when the descriptor
// carries settings for a different codec.
func (c *VideoCodec) VP8() *VP8Settings {
	s, ok := c.settings.(*VP8Settings)
	if !ok {
		panic("codec: descriptor does not carry VP8 settings")
	}
	return s
}

// VP9 returns the VP9 settings block. It panics when the descriptor
// carries settings for a different codec.
func (c *VideoCodec) VP9() *VP9Settings {
	s, ok := c.settings.(*VP9Settings)
	if !ok {
		panic("codec: descriptor does not carry VP9 settings")
	}
	return s
}

// H264 returns the H264 settings block. It panics when the descriptor
// carries settings for a different codec.
func (c *VideoCodec) H264() *H264Settings {
	s, ok := c.settings.(*H264Settings)
	if !ok {
		panic("codec: descriptor does not carry H264 settings")
	}
	return s
}

// numberOfTemporalLayers reads the resolved temporal layer count out of
// the settings block, 1 when the codec has no layering notion.
func (c *VideoCodec) numberOfTemporalLayers() int {
	switch s := c.settings.(type) {
	case *VP8Settings:
		return int(s.NumberOfTemporalLayers)
	case *VP9Settings:
		return int(s.NumberOfTemporalLayers)
	}
	return 1
}
