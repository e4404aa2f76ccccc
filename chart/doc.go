// Package chart draws the principal vs. interest split of a loan.
//
// Renderers satisfy service.ChartRenderer: every Render call produces a new
// chart instance that the caller destroys before asking for the next one.
package chart
