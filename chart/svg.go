package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"sync"

	"getloanoffer/domain"
	"getloanoffer/service"
)

var ErrNoData = errors.New("chart: segments must be finite, non-negative and not both zero")

// SVGRenderer draws a doughnut chart with a legend underneath.
type SVGRenderer struct {
	Size   int       // diameter in pixels
	Cutout float64   // inner radius as a fraction of the outer radius
	Colors [2]string // principal, interest
}

func DefaultSVGRenderer() SVGRenderer {
	return SVGRenderer{
		Size:   240,
		Cutout: 0.7,
		Colors: [2]string{"#8B5CF6", "#EC4899"},
	}
}

// SVGChart holds one rendered document until it is destroyed.
type SVGChart struct {
	mu  sync.Mutex
	svg []byte
}

// Bytes returns the document, or nil once the chart has been destroyed.
func (c *SVGChart) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.svg
}

func (c *SVGChart) Destroy() {
	c.mu.Lock()
	c.svg = nil
	c.mu.Unlock()
}

func (r SVGRenderer) Render(data domain.ChartData) (service.Chart, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}

	size := float64(r.Size)
	if size <= 0 {
		size = 240
	}
	cutout := r.Cutout
	if cutout <= 0 || cutout >= 1 {
		cutout = 0.7
	}

	center := size / 2
	outer := center - 4
	inner := outer * cutout
	radius := (outer + inner) / 2
	stroke := outer - inner
	circumference := 2 * math.Pi * radius
	first := circumference * data.Values[0] / data.Total()
	second := circumference - first

	legendTop := size + 20
	height := size + 52

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img">`,
		num(size), num(height), num(size), num(height))
	fmt.Fprintf(&buf, `<g transform="rotate(-90 %s %s)">`, num(center), num(center))
	fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s"/>`,
		num(center), num(center), num(radius), html.EscapeString(r.Colors[0]), num(stroke), num(first), num(circumference))
	fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s" stroke-dashoffset="%s"/>`,
		num(center), num(center), num(radius), html.EscapeString(r.Colors[1]), num(stroke), num(second), num(circumference), num(-first))
	buf.WriteString(`</g>`)

	for i := range data.Labels {
		y := legendTop + float64(i)*18
		fmt.Fprintf(&buf, `<rect x="8" y="%s" width="12" height="12" fill="%s"/>`, num(y-10), html.EscapeString(r.Colors[i]))
		fmt.Fprintf(&buf, `<text x="26" y="%s" font-family="Poppins, sans-serif" font-size="12" fill="#B4B4C7">%s %s%%</text>`,
			num(y), html.EscapeString(data.Labels[i]), num(100*data.Values[i]/data.Total()))
	}
	buf.WriteString(`</svg>`)

	return &SVGChart{svg: buf.Bytes()}, nil
}

func checkData(data domain.ChartData) error {
	for _, v := range data.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return ErrNoData
		}
	}
	if data.Total() <= 0 {
		return ErrNoData
	}
	return nil
}

// num prints at most two decimals without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
