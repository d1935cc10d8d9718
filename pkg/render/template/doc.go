// Package template defines the engine-agnostic seam between data table
// themes and the template engines that render them. Engines expose named
// templates with blocks and accept helper functions that templates call to
// render nested fragments.
package template
