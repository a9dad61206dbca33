// Package report renders planned travel moves for inspection: Z-profile
// charts as PNG (gonum/plot) or interactive HTML (go-echarts), and move
// geometry as GeoJSON.
package report
