// Command coreloadd is the host daemon that loads a core's bitstream onto
// the fabric, identifies it, and drives the input/save-state loop against
// it. Grounded on the reference's headless entrypoint (cmd/gbemu/main.go)
// for the run-N-frames/checksum/screenshot flow, and the CLI/logging shape
// of valerio-go-jeebie's cmd/jeebie/main.go.
package main

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/fpgacore/hostfw/internal/core"
	"github.com/fpgacore/hostfw/internal/physmem"
	"github.com/fpgacore/hostfw/internal/playback"
	"github.com/fpgacore/hostfw/internal/savestate"
	"github.com/fpgacore/hostfw/internal/socfpga"
)

func main() {
	app := cli.NewApp()
	app.Name = "coreloadd"
	app.Usage = "coreloadd --rbf <path> [options]"
	app.Description = "loads an FPGA core and drives its input/save-state loop"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rbf", Usage: "path to the core bitstream (.rbf)"},
		cli.StringFlag{Name: "dev", Value: physmem.DefaultDevice, Usage: "physical memory device"},
		cli.StringFlag{Name: "recording", Usage: "path to a recorded-input file to play back"},
		cli.BoolFlag{Name: "recording-binary", Usage: "treat the recording as the binary one-byte-per-port format"},
		cli.BoolFlag{Name: "skip-tas-check", Usage: "accepted for compatibility; has no effect on playback"},
		cli.BoolFlag{Name: "headless", Usage: "run a fixed number of ticks and exit instead of looping forever"},
		cli.IntFlag{Name: "frames", Value: 300, Usage: "ticks to run in headless mode"},
		cli.StringFlag{Name: "screenshot", Usage: "write a PNG screenshot here after the run"},
		cli.StringFlag{Name: "expect-crc", Usage: "fail with a nonzero exit code if the screenshot's CRC32 doesn't match (hex)"},
		cli.IntFlag{Name: "savestate-interval", Value: 5, Usage: "sweep dirty save-state slots every N ticks"},
		cli.Float64Flag{Name: "frame-rate", Value: 60.0, Usage: "tick rate in Hz"},
		cli.IntFlag{Name: "video-resolution", Usage: "video resolution index applied via init_video"},
		cli.IntFlag{Name: "video-aspect-ratio", Usage: "aspect ratio index applied via init_video"},
		cli.IntFlag{Name: "video-scaler-mode", Usage: "scaler mode index applied via init_video"},
		cli.BoolFlag{Name: "menu-core", Usage: "load under the platform's reduced menu-core video configuration"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("coreloadd exiting", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	rbfPath := c.String("rbf")
	if rbfPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no --rbf path provided")
	}

	raw, err := os.ReadFile(rbfPath)
	if err != nil {
		return fmt.Errorf("read rbf: %w", err)
	}

	soc, err := socfpga.Open(c.String("dev"), logger)
	if err != nil {
		return fmt.Errorf("open soc: %w", err)
	}
	defer soc.Close()

	if err := soc.LoadCore(raw); err != nil {
		return fmt.Errorf("load core: %w", err)
	}
	logger.Info("core identified", "type", soc.Core.Identity().Type, "interface", soc.Core.Identity().Interface)

	soc.Core.InitVideo(core.VideoOptions{
		Resolution:  uint8(c.Int("video-resolution")),
		AspectRatio: uint8(c.Int("video-aspect-ratio")),
		ScalerMode:  uint8(c.Int("video-scaler-mode")),
	}, c.Bool("menu-core"))

	period := time.Duration(float64(time.Second) / c.Float64("frame-rate"))
	fileWriter := diskWriter{fb: soc.FB}
	saver := savestate.NewPoller(c.Int("savestate-interval"), fileWriter)

	loop := socfpga.NewDriverLoop(soc, period, saver, logger)

	if recPath := c.String("recording"); recPath != "" {
		data, err := os.ReadFile(recPath)
		if err != nil {
			return fmt.Errorf("read recording: %w", err)
		}
		var rec *playback.Recording
		if c.Bool("recording-binary") {
			rec, err = playback.ParseBinary(data, 1)
		} else {
			rec, err = playback.ParseText(data, 1)
		}
		if err != nil {
			return fmt.Errorf("parse recording: %w", err)
		}
		loop.AttachPlayback(playback.NewPlayer(rec))
	}

	if c.Bool("headless") {
		return runHeadless(soc, loop, c.Int("frames"), c.String("screenshot"), c.String("expect-crc"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	noop := func(context.Context) error { <-ctx.Done(); return ctx.Err() }
	return loop.Run(ctx, noop, noop)
}

func runHeadless(soc *socfpga.SocFpga, loop *socfpga.DriverLoop, frames int, screenshotPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		loop.TickOnce()
	}
	elapsed := time.Since(start)

	slog.Info("headless run complete", "ticks", frames, "elapsed", elapsed.Truncate(time.Millisecond),
		"ticks_per_sec", float64(frames)/elapsed.Seconds())

	if screenshotPath == "" && expectCRC == "" {
		return nil
	}

	img, err := soc.Core.Screenshot()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	if expectCRC != "" {
		bounds := img.Bounds()
		buf := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, a := img.At(x, y).RGBA()
				buf = append(buf, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
			}
		}
		got := fmt.Sprintf("%08x", crc32.ChecksumIEEE(buf))
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		if got != want {
			return fmt.Errorf("screenshot checksum mismatch: got %s, want %s", got, want)
		}
	}

	if screenshotPath != "" {
		if err := soc.FB.SaveScreenshotPNG(screenshotPath); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		slog.Info("wrote screenshot", "path", screenshotPath)
	}
	return nil
}

// diskWriter adapts savestate.Writer onto plain files plus the live
// framebuffer for the paired screenshot.
type diskWriter struct {
	fb interface{ SaveScreenshotPNG(path string) error }
}

func (d diskWriter) WriteState(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (d diskWriter) WriteScreenshot(path string) error {
	return d.fb.SaveScreenshotPNG(path)
}
