// Package chartmeta provides the shared 2-D coordinate machinery for a
// small set of offline chart utilities: recovering data coordinates from
// pixel positions embedded in generated SVG plots, and synthesising exact
// pixel coordinates for closed-form figures.
//
// Layout plans
//
// A Plan is the single source of truth for one figure family: canvas size,
// the tick mark and tick label geometry, the reserved marker style and the
// panel rectangles with their data ranges. The forward direction (package
// figure) places elements through a Plan's panel transforms; the inverse
// direction (package extract) derives its match patterns from the same
// Plan, so producer and scraper cannot drift out of sync.
//
// Affine maps
//
// Both directions are pure one-dimensional affine maps. The forward maps
// are built from a panel's data range and pixel rectangle; the inverse
// maps are fitted from two labeled reference ticks found in the markup.
package chartmeta
