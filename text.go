package whiteboard

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TextMeasurer measures single lines of text at a pixel size.
// Both TTFFont and every Surface satisfy it.
type TextMeasurer interface {
	MeasureText(s string, size float64) (w, h float64)
	LineHeight(size float64) float64
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering. Faces are
// created lazily per pixel size and cached.
type TTFFont struct {
	source *text.GoTextFaceSource

	mu    sync.Mutex
	faces map[float64]*text.GoTextFace
}

// LoadTTFFont parses raw TTF/OTF data.
func LoadTTFFont(ttfData []byte) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("whiteboard: failed to parse TTF data: %w", err)
	}
	return &TTFFont{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *TTFFont
)

// DefaultFont returns the built-in Go Regular font.
func DefaultFont() *TTFFont {
	defaultFontOnce.Do(func() {
		f, err := LoadTTFFont(goregular.TTF)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}

// Face returns the face for size, creating it on first use.
func (f *TTFFont) Face(size float64) *text.GoTextFace {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureText returns the width and height of the rendered text.
func (f *TTFFont) MeasureText(s string, size float64) (w, h float64) {
	return text.Measure(s, f.Face(size), f.LineHeight(size))
}

// --- TextBox ---

const defaultFontSize = 14

// TextBox is a widget holding a wrapped paragraph. Its width is the wrap
// width; its height follows the laid-out paragraph.
type TextBox struct {
	Widget

	Text     string
	Color    Color
	FontSize float64

	font  TextMeasurer
	lines []string
	lh    float64
}

// NewTextBox creates a text box wrapping at width. A nil font uses
// DefaultFont.
func NewTextBox(x, y, width float64, content string, font TextMeasurer) *TextBox {
	tb := &TextBox{
		Text:     content,
		Color:    ColorBlack,
		FontSize: defaultFontSize,
		font:     font,
	}
	if tb.font == nil {
		tb.font = DefaultFont()
	}
	tb.init(tb, WidgetText, x, y, width, 0)
	tb.Name = "text"
	tb.Layout()
	return tb
}

// SetText replaces the content and lays it out again.
func (tb *TextBox) SetText(s string) {
	tb.Text = s
	tb.Layout()
}

// Lines returns the wrapped lines from the last layout.
func (tb *TextBox) Lines() []string { return tb.lines }

// Layout wraps Text at the current width and resizes the box to fit.
func (tb *TextBox) Layout() {
	tb.lh = tb.font.LineHeight(tb.FontSize)
	tb.lines = wrapText(tb.Text, tb.width, func(s string) float64 {
		w, _ := tb.font.MeasureText(s, tb.FontSize)
		return w
	})
	tb.SetHeight(float64(len(tb.lines)) * tb.lh)
}

func (tb *TextBox) drawContent(s Surface) {
	for i, line := range tb.lines {
		if line == "" {
			continue
		}
		s.DrawText(line, 0, float64(i)*tb.lh, tb.FontSize, tb.Color)
	}
}

// wrapText breaks content into lines no wider than maxW. Explicit newlines
// always break. A single word wider than maxW gets a line of its own.
func wrapText(content string, maxW float64, measure func(string) float64) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if maxW > 0 && measure(candidate) > maxW {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}
