// Package canvas is the drawing surface the replay scene renders onto.
//
// [Canvas] is the narrow capability the scene depends on: draw a primitive, get an [ArtifactID]
// back, remove it later, and ask for a redraw. [Handle] and [Group] wrap IDs with idempotent
// release so owners never remove an artifact twice.
//
// [Terminal] is the implementation used by the interactive program. It stores artifacts in
// memory and rasterizes them into lipgloss-styled cells on [Terminal.Render].
//
// Coordinates depend on the [Pane]: [Pitch] artifacts use pitch units (0..120 x 0..80, y grows
// downward) while [Sidebar] and [Main] artifacts use normalized 0..1 units.
package canvas
