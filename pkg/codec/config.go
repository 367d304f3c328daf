package codec

// ContentType tells the translation what the source material is, the
// encoder is tuned differently for screen capture.
type ContentType int

const (
	ContentRealtimeVideo ContentType = iota
	ContentScreen
)

// VideoStream describes one simulcast/quality layer the application
// wants to send. Bitrates are in bps. A stream list is read only during
// translation and stays owned by the caller.
type VideoStream struct {
	Width        int `mapstructure:"width"`
	Height       int `mapstructure:"height"`
	MaxFramerate int `mapstructure:"maxframerate"`

	MinBitrateBps    int `mapstructure:"minbitrate"`
	TargetBitrateBps int `mapstructure:"targetbitrate"`
	MaxBitrateBps    int `mapstructure:"maxbitrate"`

	MaxQP int `mapstructure:"maxqp"`

	// NumTemporalLayers is nil when the stream does not pin a temporal
	// layer count and the codec default applies.
	NumTemporalLayers *int `mapstructure:"temporallayers"`

	Active bool `mapstructure:"active"`
}

// EncoderConfig is the generic, codec agnostic encoder configuration.
// It is read only during translation and stays owned by the caller.
type EncoderConfig struct {
	// CodecType selects the codec, CodecUnknown defers to PayloadName.
	CodecType CodecType
	// PayloadName is the legacy way of selecting the codec, consulted
	// only when CodecType is CodecUnknown.
	PayloadName string

	ContentType ContentType

	// MinTransmitBitrateBps is the padding floor in bps, must not be
	// negative.
	MinTransmitBitrateBps int

	// EncoderSettings optionally overrides the codec specific defaults.
	// Its concrete type must match the resolved codec type.
	EncoderSettings EncoderSettings

	// SpatialLayers optionally pins the VP9 SVC layering instead of
	// deriving it from the stream dimensions.
	SpatialLayers []SpatialLayer
}
