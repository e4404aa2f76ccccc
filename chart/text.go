package chart

import (
	"fmt"
	"io"
	"strings"

	"getloanoffer/domain"
	"getloanoffer/service"
)

// TextRenderer prints the split as a proportion bar, for terminals.
type TextRenderer struct {
	Out   io.Writer
	Width int
}

type textChart struct{}

func (textChart) Destroy() {}

func (r TextRenderer) Render(data domain.ChartData) (service.Chart, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}

	width := r.Width
	if width <= 0 {
		width = 40
	}
	share := data.Values[0] / data.Total()
	filled := int(share*float64(width) + 0.5)

	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	_, err := fmt.Fprintf(r.Out, "[%s] %s %.1f%% / %s %.1f%%\n",
		bar, data.Labels[0], 100*share, data.Labels[1], 100*(1-share))
	if err != nil {
		return nil, fmt.Errorf("chart: write: %w", err)
	}
	return textChart{}, nil
}
