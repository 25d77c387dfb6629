package render

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// The dashboard is an 8-column, 5-row grid under a title band, the
// same arrangement for every run.
const (
	gridCols = 8
	gridRows = 5

	titleFrac = 0.045
	cellPad   = vg.Length(4)
)

// body returns the canvas region below the title band.
func body(dc draw.Canvas) draw.Canvas {
	h := dc.Max.Y - dc.Min.Y
	return draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: dc.Min,
			Max: vg.Point{X: dc.Max.X, Y: dc.Max.Y - h*vg.Length(titleFrac)},
		},
	}
}

// titleBand returns the canvas region reserved for the title.
func titleBand(dc draw.Canvas) draw.Canvas {
	h := dc.Max.Y - dc.Min.Y
	return draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: dc.Min.X, Y: dc.Max.Y - h*vg.Length(titleFrac)},
			Max: dc.Max,
		},
	}
}

// cell returns the padded region spanning grid columns [col0, col1)
// and rows [row0, row1), rows counted from the top.
func cell(dc draw.Canvas, col0, row0, col1, row1 int) draw.Canvas {
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	cw := w / gridCols
	rh := h / gridRows

	return draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{
				X: dc.Min.X + cw*vg.Length(col0) + cellPad,
				Y: dc.Max.Y - rh*vg.Length(row1) + cellPad,
			},
			Max: vg.Point{
				X: dc.Min.X + cw*vg.Length(col1) - cellPad,
				Y: dc.Max.Y - rh*vg.Length(row0) - cellPad,
			},
		},
	}
}

// fill paints a solid rectangle over the whole canvas region.
func fill(dc draw.Canvas, c color.Color) {
	var p vg.Path
	p.Move(vg.Point{X: dc.Min.X, Y: dc.Min.Y})
	p.Line(vg.Point{X: dc.Max.X, Y: dc.Min.Y})
	p.Line(vg.Point{X: dc.Max.X, Y: dc.Max.Y})
	p.Line(vg.Point{X: dc.Min.X, Y: dc.Max.Y})
	p.Close()
	dc.SetColor(c)
	dc.Fill(p)
}
