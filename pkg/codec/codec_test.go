package codec

import (
	"testing"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/assert"
)

func TestPayloadStringToCodecType(t *testing.T) {
	tests := []struct {
		name string
		want CodecType
	}{
		{"VP8", CodecVP8},
		{"vp8", CodecVP8},
		{"VP9", CodecVP9},
		{"H264", CodecH264},
		{"h264", CodecH264},
		{"Multiplex", CodecMultiplex},
		{"AV1", CodecGeneric},
		{"", CodecGeneric},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PayloadStringToCodecType(tt.name))
		})
	}
}

func TestMimeTypeToCodecType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     CodecType
	}{
		{webrtc.MimeTypeVP8, CodecVP8},
		{webrtc.MimeTypeVP9, CodecVP9},
		{webrtc.MimeTypeH264, CodecH264},
		{"video/vp8", CodecVP8},
		{"video/AV1", CodecGeneric},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.want, MimeTypeToCodecType(tt.mimeType))
		})
	}
}

func TestVideoCodecSettingsAccessors(t *testing.T) {
	videoCodec := &VideoCodec{CodecType: CodecVP8, settings: DefaultVP8Settings()}
	assert.NotNil(t, videoCodec.VP8())
	assert.Panics(t, func() {
		videoCodec.VP9()
	})
	assert.Panics(t, func() {
		videoCodec.H264()
	})
}
