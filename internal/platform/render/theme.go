package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"signalchart/internal/feature/chart/domain/entity"
)

// Palette maps the symbolic parts of a chart to concrete colors for one
// theme. Overlay geometry only ever names color roles; this lookup is
// the single place roles become pixels.
type Palette struct {
	Background drawing.Color
	Grid       drawing.Color
	Axis       drawing.Color
	AxisText   drawing.Color
	Title      drawing.Color
	CandleUp   drawing.Color
	CandleDown drawing.Color
	Wick       drawing.Color
	roles      map[entity.ColorRole]drawing.Color
	mas        []drawing.Color
}

// Role returns the concrete color for an overlay color role.
func (p Palette) Role(role entity.ColorRole) drawing.Color {
	if c, ok := p.roles[role]; ok {
		return c
	}
	return p.AxisText
}

// MA returns the line color for the i-th moving-average overlay.
func (p Palette) MA(i int) drawing.Color {
	return p.mas[i%len(p.mas)]
}

// Role and MA colors are shared between themes; zone colors carry their
// translucency in the alpha channel.
var roleColors = map[entity.ColorRole]drawing.Color{
	entity.RoleLoss:   {R: 255, G: 92, B: 92, A: 46},
	entity.RoleProfit: {R: 111, G: 207, B: 151, A: 31},
	entity.RoleStop:   {R: 255, G: 59, B: 48, A: 255},
	entity.RoleEntry:  {R: 47, G: 128, B: 237, A: 255},
	entity.RoleTarget: {R: 47, G: 128, B: 237, A: 255},
	entity.RoleLast:   {R: 0, G: 209, B: 178, A: 255},
}

var maColors = []drawing.Color{
	{R: 242, G: 153, B: 74, A: 255},
	{R: 187, G: 107, B: 217, A: 255},
	{R: 242, G: 201, B: 76, A: 255},
}

var darkPalette = Palette{
	Background: drawing.Color{R: 11, G: 14, B: 17, A: 255},
	Grid:       drawing.Color{R: 43, G: 47, B: 54, A: 255},
	Axis:       drawing.Color{R: 192, G: 192, B: 192, A: 255},
	AxisText:   drawing.Color{R: 192, G: 192, B: 192, A: 255},
	Title:      drawing.Color{R: 234, G: 234, B: 234, A: 255},
	CandleUp:   drawing.Color{R: 0, G: 181, B: 255, A: 255},
	CandleDown: drawing.Color{R: 255, G: 59, B: 48, A: 255},
	Wick:       drawing.Color{R: 255, G: 255, B: 255, A: 255},
	roles:      roleColors,
	mas:        maColors,
}

var lightPalette = Palette{
	Background: drawing.Color{R: 255, G: 255, B: 255, A: 255},
	Grid:       drawing.Color{R: 221, G: 221, B: 221, A: 255},
	Axis:       drawing.Color{R: 51, G: 51, B: 51, A: 255},
	AxisText:   drawing.Color{R: 51, G: 51, B: 51, A: 255},
	Title:      drawing.Color{R: 34, G: 34, B: 34, A: 255},
	CandleUp:   drawing.Color{R: 0, G: 181, B: 255, A: 255},
	CandleDown: drawing.Color{R: 255, G: 59, B: 48, A: 255},
	Wick:       drawing.Color{R: 51, G: 51, B: 51, A: 255},
	roles:      roleColors,
	mas:        maColors,
}

// PaletteFor returns the palette for a theme name. Unknown names fall
// back to the dark theme.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}
