// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dcmrender renders one frame of a DICOM file to a PNG or BMP image.
//
// Usage:
//
//	dcmrender [-config preset.yaml] [-frame n] [-scale s] [-format png|bmp] -out frame.png file.dcm
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"

	"github.com/GoogleCloudPlatform/go-dicom-imaging/imaging"
	"github.com/GoogleCloudPlatform/go-dicom-imaging/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML render preset")
	frame := flag.Int("frame", 0, "Zero based frame to render")
	scale := flag.Float64("scale", 0, "Scale factor, overrides the preset when greater than 0")
	format := flag.String("format", "", "Output format (png or bmp), overrides the preset")
	out := flag.String("out", "", "Output file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: dcmrender [flags] -out FILE INPUT.dcm")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("failed to load configuration")
	}
	if *scale > 0 {
		cfg.Scale = *scale
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	if err := run(cfg, flag.Arg(0), *frame, *out); err != nil {
		log.Fatal().Err(err).Str("input", flag.Arg(0)).Msg("render failed")
	}
}

func run(cfg *config.Config, input string, frame int, out string) error {
	overlayColor, _ := config.ParseColor(cfg.OverlayColor)
	reg := prometheus.NewRegistry()
	metrics := imaging.NewMetrics(reg)

	im, err := imaging.Open(input,
		imaging.WithLogger(log.Logger),
		imaging.WithMetrics(metrics),
		imaging.WithOverlayColor(overlayColor),
		imaging.WithScale(cfg.Scale),
	)
	if err != nil {
		return err
	}

	img, err := im.RenderImage(frame)
	if err != nil {
		return err
	}
	if cfg.Window != nil {
		if im.Pipeline().Kind() != imaging.Grayscale {
			log.Warn().Stringer("pipeline", im.Pipeline().Kind()).Msg("ignoring window for non grayscale image")
		} else {
			im.SetWindowCenter(cfg.Window.Center)
			im.SetWindowWidth(cfg.Window.Width)
			if img, err = im.RenderImage(frame); err != nil {
				return err
			}
		}
	}

	if err := writeImage(out, cfg.Format, img); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	ev := log.Info().Str("output", out).Int("width", im.Width()).Int("height", im.Height())
	for _, f := range families {
		if len(f.GetMetric()) == 1 && f.GetMetric()[0].GetCounter() != nil {
			ev = ev.Float64(strings.TrimPrefix(f.GetName(), "imaging_"), f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	ev.Msg("rendered frame")
	return nil
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case config.FormatBMP:
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %v: %w", format, err)
	}
	return f.Close()
}
