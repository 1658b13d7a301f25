package sparktrail

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot asks for the next rendered frame to be saved as a PNG under
// RunConfig.ScreenshotDir. Labels become part of the file name.
func (g *game) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots saves the finished frame once per queued label.
func (g *game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	labels := g.screenshotQueue
	g.screenshotQueue = g.screenshotQueue[:0]

	log := g.engine.log.With(zap.String("dir", g.cfg.ScreenshotDir))
	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		log.Warn("screenshot directory unavailable", zap.Error(err))
		return
	}

	// ebiten pixels are premultiplied, which is exactly image.RGBA.
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		name := stamp + "_" + sanitizeLabel(label) + ".png"
		if err := savePNG(filepath.Join(g.cfg.ScreenshotDir, name), img); err != nil {
			log.Warn("screenshot not saved", zap.String("label", label), zap.Error(err))
			continue
		}
		log.Debug("screenshot saved", zap.String("file", name))
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.' and maps everything else
// to '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
