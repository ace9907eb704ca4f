// Package scene owns everything drawn on the match screen.
//
// Each layer keeps handles to the artifacts it created and removes exactly those; nothing in this
// package wipes the canvas. [Match] composes the layers into the live match view and applies a
// frame in a fixed order: players, then the event overlay, then analytics, then a redraw request.
package scene
