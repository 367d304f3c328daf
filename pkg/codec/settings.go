package codec

// EncoderSettings is the codec specific extension block of an encoder
// configuration. Exactly one of VP8Settings, VP9Settings or
// H264Settings satisfies it, keyed by the codec type of the descriptor
// it ends up in.
type EncoderSettings interface {
	clone() EncoderSettings
}

// VideoCodecComplexity selects the encoder speed/quality tradeoff.
type VideoCodecComplexity int

const (
	ComplexityNormal VideoCodecComplexity = iota
	ComplexityHigh
	ComplexityHigher
	ComplexityMax
)

// VP8ResilienceMode controls how tolerant a VP8 stream is to losing
// references.
type VP8ResilienceMode int

const (
	// ResilienceOff: the stream is not resilient, frames may reference
	// any prior frame.
	ResilienceOff VP8ResilienceMode = iota
	// ResilientStream: the stream recovers from a loss without a key
	// frame, frames only reference temporal layer 0.
	ResilientStream
	// ResilientFrames: every frame is independently decodable.
	ResilientFrames
)

// VP8Settings is the VP8 extension block.
type VP8Settings struct {
	Complexity             VideoCodecComplexity
	Resilience             VP8ResilienceMode
	NumberOfTemporalLayers uint8
	DenoisingOn            bool
	AutomaticResizeOn      bool
	FrameDroppingOn        bool
	KeyFrameInterval       int
}

func (s *VP8Settings) clone() EncoderSettings {
	c := *s
	return &c
}

// VP9Settings is the VP9 extension block.
type VP9Settings struct {
	Complexity             VideoCodecComplexity
	ResilienceOn           bool
	NumberOfTemporalLayers uint8
	NumberOfSpatialLayers  uint8
	DenoisingOn            bool
	FrameDroppingOn        bool
	KeyFrameInterval       int
	AdaptiveQPMode         bool
	AutomaticResizeOn      bool
	FlexibleMode           bool
}

func (s *VP9Settings) clone() EncoderSettings {
	c := *s
	return &c
}

// H264Profile is the subset of H264 profiles encoders are configured
// with.
type H264Profile int

const (
	H264ProfileConstrainedBaseline H264Profile = iota
	H264ProfileBaseline
	H264ProfileMain
	H264ProfileHigh
)

// H264Settings is the H264 extension block.
type H264Settings struct {
	Profile          H264Profile
	FrameDroppingOn  bool
	KeyFrameInterval int
}

func (s *H264Settings) clone() EncoderSettings {
	c := *s
	return &c
}

const defaultKeyFrameInterval = 3000

// DefaultVP8Settings returns the VP8 extension block used when the
// configuration does not supply one.
func DefaultVP8Settings() *VP8Settings {
	return &VP8Settings{
		Complexity:             ComplexityNormal,
		Resilience:             ResilientStream,
		NumberOfTemporalLayers: 1,
		DenoisingOn:            true,
		AutomaticResizeOn:      false,
		FrameDroppingOn:        true,
		KeyFrameInterval:       defaultKeyFrameInterval,
	}
}

// DefaultVP9Settings returns the VP9 extension block used when the
// configuration does not supply one.
func DefaultVP9Settings() *VP9Settings {
	return &VP9Settings{
		Complexity:             ComplexityNormal,
		ResilienceOn:           true,
		NumberOfTemporalLayers: 1,
		NumberOfSpatialLayers:  1,
		DenoisingOn:            true,
		FrameDroppingOn:        true,
		KeyFrameInterval:       defaultKeyFrameInterval,
		AdaptiveQPMode:         true,
		AutomaticResizeOn:      true,
		FlexibleMode:           false,
	}
}

// DefaultH264Settings returns the H264 extension block used when the
// configuration does not supply one.
func DefaultH264Settings() *H264Settings {
	return &H264Settings{
		Profile:          H264ProfileConstrainedBaseline,
		FrameDroppingOn:  true,
		KeyFrameInterval: defaultKeyFrameInterval,
	}
}
