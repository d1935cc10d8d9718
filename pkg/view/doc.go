// Package view defines the rendering-ready view tree produced from a data
// table snapshot. Every node carries its own variables and a non-owning link
// to its parent; the root data table node owns the theme stack that all
// descendants inherit when their fragments are resolved against themes.
package view
