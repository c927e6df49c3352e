// Package contactsheet lays out sampled frames in a labelled grid.
package contactsheet

import "image"

// LayoutInput describes the sheet geometry.
type LayoutInput struct {
	Count       int
	Columns     int
	ThumbWidth  int
	ThumbHeight int
	Gap         int
	Padding     int
	LabelHeight int
}

// Layout is the computed sheet geometry.
type Layout struct {
	Width  int
	Height int
	Rows   int
	Cells  []image.Rectangle
	Labels []image.Rectangle
}

// ComputeLayout places Count thumbnails row by row, each with a label
// strip underneath.
func ComputeLayout(in LayoutInput) Layout {
	columns := max(in.Columns, 1)
	if in.Count < columns {
		columns = max(in.Count, 1)
	}
	rows := (in.Count + columns - 1) / columns

	cellHeight := in.ThumbHeight + in.LabelHeight
	out := Layout{
		Width:  in.Padding*2 + columns*in.ThumbWidth + (columns-1)*in.Gap,
		Height: in.Padding * 2,
		Rows:   rows,
		Cells:  make([]image.Rectangle, in.Count),
		Labels: make([]image.Rectangle, in.Count),
	}
	if rows > 0 {
		out.Height += rows*cellHeight + (rows-1)*in.Gap
	}

	for i := 0; i < in.Count; i++ {
		col, row := i%columns, i/columns
		x := in.Padding + col*(in.ThumbWidth+in.Gap)
		y := in.Padding + row*(cellHeight+in.Gap)
		out.Cells[i] = image.Rect(x, y, x+in.ThumbWidth, y+in.ThumbHeight)
		out.Labels[i] = image.Rect(x, y+in.ThumbHeight, x+in.ThumbWidth, y+cellHeight)
	}
	return out
}
