package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getloanoffer/domain"
	"getloanoffer/service"
)

func TestSVGRenderer_DrawsBothSegments(t *testing.T) {
	c, err := DefaultSVGRenderer().Render(domain.NewChartData(75, 25))
	require.NoError(t, err)

	svg := c.(*SVGChart).Bytes()
	require.NotEmpty(t, svg)
	require.NoError(t, xml.Unmarshal(svg, new(struct{ XMLName xml.Name })), "output must be well-formed XML")

	doc := string(svg)
	assert.Equal(t, 2, strings.Count(doc, "<circle"))
	assert.Contains(t, doc, `stroke="#8B5CF6"`)
	assert.Contains(t, doc, `stroke="#EC4899"`)
	assert.Contains(t, doc, "Principal 75%")
	assert.Contains(t, doc, "Interest 25%")
}

func TestSVGRenderer_ZeroInterestIsFullRing(t *testing.T) {
	c, err := DefaultSVGRenderer().Render(domain.NewChartData(120000, 0))
	require.NoError(t, err)

	doc := string(c.(*SVGChart).Bytes())
	assert.Contains(t, doc, "Principal 100%")
	assert.Contains(t, doc, "Interest 0%")
}

func TestSVGRenderer_DestroyReleasesDocument(t *testing.T) {
	c, err := DefaultSVGRenderer().Render(domain.NewChartData(1, 1))
	require.NoError(t, err)

	c.Destroy()
	assert.Nil(t, c.(*SVGChart).Bytes())
	c.Destroy()
}

func TestRenderers_RejectBadData(t *testing.T) {
	bad := []domain.ChartData{
		domain.NewChartData(0, 0),
		domain.NewChartData(-1, 5),
		domain.NewChartData(math.NaN(), 1),
		domain.NewChartData(1, math.Inf(1)),
	}
	for _, data := range bad {
		_, err := DefaultSVGRenderer().Render(data)
		assert.ErrorIs(t, err, ErrNoData)

		_, err = TextRenderer{Out: &bytes.Buffer{}}.Render(data)
		assert.ErrorIs(t, err, ErrNoData)
	}
}

func TestTextRenderer(t *testing.T) {
	var out bytes.Buffer
	_, err := TextRenderer{Out: &out, Width: 10}.Render(domain.NewChartData(80, 20))
	require.NoError(t, err)

	assert.Equal(t, "[########..] Principal 80.0% / Interest 20.0%\n", out.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTextRenderer_WriteError(t *testing.T) {
	_, err := TextRenderer{Out: brokenWriter{}}.Render(domain.NewChartData(1, 1))
	assert.Error(t, err)
}

func TestRenderersPlugIntoCalculator(t *testing.T) {
	var out bytes.Buffer
	controls := service.NewLoanControls(domain.DefaultLoanInputs())
	calc := service.NewCalculator(controls, service.DefaultFormatter(), service.Display{}, TextRenderer{Out: &out, Width: 20})
	defer calc.Close()

	controls.Set(service.ControlRate, service.SourceSlider, "0")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[####################] Principal 100.0% / Interest 0.0%", lines[1])
}
