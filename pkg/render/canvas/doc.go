// Package canvas draws a snapshot of a construction as a raster image.
//
// The input is the dependency graph built by the importer; every node that
// carries geometry metadata (point position, line standard form, circle
// center and radius) is drawn in its stroke or fill color. Lines whose
// straightFirst or straightLast flag is off are drawn as rays or segments
// between their defining points. Hidden helpers are skipped unless
// [Options.ShowHidden] is set.
//
// Drawing uses the software rasterizer of [github.com/gogpu/gg], so no GPU
// or font files are needed. Labels are not drawn.
package canvas
