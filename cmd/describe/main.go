// Package main contains an entrypoint that translates an encoder
// configuration file into a codec descriptor and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ionorg/ion-codec/pkg/codec"
	"github.com/ionorg/ion-codec/pkg/logger"
)

// Config maps the TOML encoder configuration file.
type Config struct {
	Codec   codecConfig         `mapstructure:"codec"`
	Streams []codec.VideoStream `mapstructure:"stream"`
	Log     logConfig           `mapstructure:"log"`
}

type codecConfig struct {
	PayloadName        string `mapstructure:"payloadname"`
	ContentType        string `mapstructure:"contenttype"`
	MinTransmitBitrate int    `mapstructure:"mintransmitbitrate"`
	Nack               bool   `mapstructure:"nack"`
	// TargetBitrate is the sample rate in bps the allocator is asked to
	// split after translation.
	TargetBitrate uint32 `mapstructure:"targetbitrate"`
}

type logConfig struct {
	Level string `mapstructure:"level"`
}

var (
	conf = Config{}
	file string
)

func showHelp() {
	fmt.Printf("Usage:%s {params}\n", os.Args[0])
	fmt.Println("      -c {config file}")
	fmt.Println("      -h (show help info)")
}

func load() bool {
	_, err := os.Stat(file)
	if err != nil {
		return false
	}

	viper.SetConfigFile(file)
	viper.SetConfigType("toml")

	err = viper.ReadInConfig()
	if err != nil {
		fmt.Printf("config file %s read failed. %v\n", file, err)
		return false
	}
	err = viper.GetViper().Unmarshal(&conf)
	if err != nil {
		fmt.Printf("config file %s loaded failed. %v\n", file, err)
		return false
	}

	if len(conf.Streams) == 0 {
		fmt.Printf("config file %s loaded failed. at least one [[stream]] is required\n", file)
		return false
	}

	if conf.Codec.ContentType != "" && conf.Codec.ContentType != "video" && conf.Codec.ContentType != "screen" {
		fmt.Printf("config file %s loaded failed. contenttype must be video or screen\n", file)
		return false
	}

	return true
}

func parse() bool {
	flag.StringVar(&file, "c", "config.toml", "config file")
	help := flag.Bool("h", false, "help info")
	flag.Parse()
	if !load() {
		return false
	}

	if *help {
		return false
	}
	return true
}

func main() {
	if !parse() {
		showHelp()
		os.Exit(-1)
	}

	log := logger.New(conf.Log.Level)
	codec.Logger = log

	contentType := codec.ContentRealtimeVideo
	if conf.Codec.ContentType == "screen" {
		contentType = codec.ContentScreen
	}

	config := codec.EncoderConfig{
		PayloadName:           conf.Codec.PayloadName,
		ContentType:           contentType,
		MinTransmitBitrateBps: conf.Codec.MinTransmitBitrate,
	}

	videoCodec, allocator, err := codec.SetupCodec(config, conf.Streams, conf.Codec.Nack)
	if err != nil {
		log.Error(err, "codec setup failed")
		os.Exit(-1)
	}

	log.Info("built video codec",
		"codec", videoCodec.CodecType.String(),
		"mode", videoCodec.Mode.String(),
		"width", videoCodec.Width,
		"height", videoCodec.Height,
		"framerate", videoCodec.MaxFramerate,
		"minbitrate_kbps", videoCodec.MinBitrate,
		"maxbitrate_kbps", videoCodec.MaxBitrate,
		"simulcast_streams", videoCodec.NumberOfSimulcastStreams,
		"active", videoCodec.Active,
	)
	for i := 0; i < videoCodec.NumberOfSimulcastStreams; i++ {
		stream := videoCodec.SimulcastStreams[i]
		log.Info("simulcast stream",
			"index", i,
			"width", stream.Width,
			"height", stream.Height,
			"minbitrate_kbps", stream.MinBitrate,
			"targetbitrate_kbps", stream.TargetBitrate,
			"maxbitrate_kbps", stream.MaxBitrate,
			"temporal_layers", stream.NumberOfTemporalLayers,
			"active", stream.Active,
		)
	}

	target := conf.Codec.TargetBitrate
	if target == 0 {
		target = videoCodec.MaxBitrate * 1000
	}
	alloc := allocator.Allocate(target)
	log.Info("sample allocation", "target_bps", target, "allocated_bps", alloc.Sum())
	for sl := 0; sl < codec.MaxSpatialLayers; sl++ {
		if alloc.GetSpatialLayerSum(sl) == 0 {
			continue
		}
		for tl := 0; tl < codec.MaxTemporalStreams; tl++ {
			if rate := alloc.GetBitrate(sl, tl); rate > 0 {
				log.Info("layer allocation", "spatial", sl, "temporal", tl, "bps", rate)
			}
		}
	}
}
