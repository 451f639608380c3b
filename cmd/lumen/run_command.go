package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lumen/internal/analysis"
	"lumen/internal/artnet"
	"lumen/internal/director"
	"lumen/internal/fixture"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:   "run <audio-file>",
		Short: "Play an audio file and drive the light show from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logger.With(slog.String("run_id", uuid.NewString()))
			return runShow(cmd.Context(), ctx, logger, args[0], silent)
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "Analyze and drive lights without audio playback")
	return cmd
}

func runShow(parent context.Context, cmdCtx *commandContext, logger *slog.Logger, audioPath string, silent bool) error {
	cfg, _ := cmdCtx.ensureConfig()

	samples, format, err := loadMono(audioPath)
	if err != nil {
		return err
	}
	sampleRate := float64(format.SampleRate)
	window := cfg.Audio.Window
	windows := len(samples) / window
	if windows == 0 {
		return fmt.Errorf("%s: audio shorter than one analysis window", audioPath)
	}

	analyzer := analysis.NewAnalyzer(analysis.Options{
		SampleRate:    sampleRate,
		Window:        window,
		BeatThreshold: cfg.Audio.BeatThreshold,
		MoodHold:      cfg.Audio.MoodHoldSeconds,
	})

	show, err := director.New(cfg, logger)
	if err != nil {
		return err
	}
	defer show.Close()

	out, err := newOutput(cmdCtx, logger)
	if err != nil {
		return err
	}
	if out != nil {
		defer out.close()
	}

	if !silent {
		playback, playFormat, err := analysis.Decode(audioPath)
		if err != nil {
			return err
		}
		defer playback.Close()
		if err := speaker.Init(playFormat.SampleRate, playFormat.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		speaker.Play(beep.Seq(playback))
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hop := float64(window) / sampleRate
	ticker := time.NewTicker(time.Duration(hop * float64(time.Second)))
	defer ticker.Stop()

	logger.Info("show started",
		slog.String("audio", audioPath),
		slog.Int("windows", windows),
		slog.Float64("hop_seconds", hop))

	t := 0.0
	for i := 0; i < windows; i++ {
		select {
		case <-ctx.Done():
			logger.Info("show interrupted", slog.Float64("at_seconds", t))
			return nil
		case <-ticker.C:
		}

		chunk := samples[i*window : (i+1)*window]
		frame, mood := analyzer.Process(chunk)
		t += hop
		show.Update(t, hop, mood, frame)

		if out != nil {
			if err := out.send(show.Fixtures()); err != nil {
				logger.Warn("artnet send failed", slog.String("error", err.Error()))
			}
		}
	}

	logger.Info("show finished",
		slog.Float64("seconds", t),
		slog.String("final_program", show.State().Current.String()))
	return nil
}

// loadMono decodes the whole file into mono samples up front so analysis and
// playback never contend for the same stream.
func loadMono(path string) ([]float64, beep.Format, error) {
	stream, format, err := analysis.Decode(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer stream.Close()

	var samples []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for i := 0; i < n; i++ {
			samples = append(samples, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			break
		}
	}
	return samples, format, nil
}

// output bundles the Art-Net sender with its DMX mapper.
type output struct {
	sender   *artnet.Sender
	mapper   *artnet.Mapper
	universe uint16
}

// newOutput wires the configured Art-Net transport, or returns nil when
// output is disabled.
func newOutput(cmdCtx *commandContext, logger *slog.Logger) (*output, error) {
	cfg, _ := cmdCtx.ensureConfig()
	if !cfg.ArtNet.Enabled {
		return nil, nil
	}

	var patch *artnet.Patch
	if cfg.ArtNet.PatchFile != "" {
		loaded, err := artnet.LoadPatch(cfg.ArtNet.PatchFile)
		if err != nil {
			return nil, err
		}
		patch = loaded
	} else {
		reg, err := newRegistryFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		patch = artnet.DefaultPatch(reg)
		logger.Debug("using generated patch", slog.Int("fixtures", len(patch.Fixtures)))
	}

	sender, err := artnet.NewSender(cfg.ArtNet.Broadcast)
	if err != nil {
		return nil, err
	}
	logger.Info("artnet output enabled",
		slog.String("broadcast", cfg.ArtNet.Broadcast),
		slog.Int("universe", cfg.ArtNet.Universe))
	return &output{
		sender:   sender,
		mapper:   artnet.NewMapper(patch),
		universe: uint16(cfg.ArtNet.Universe),
	}, nil
}

func (o *output) send(reg *fixture.Registry) error {
	if err := o.sender.SendDMX(o.mapper.Frame(reg), o.universe); err != nil {
		return err
	}
	return o.sender.SendSync()
}

func (o *output) close() {
	o.sender.Close()
}
