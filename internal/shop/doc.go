// Package shop runs a full mosaic generation: it fetches each item's
// thumbnail, renders cards on a worker pool, waits for every card, and then
// composes and publishes the mosaic.
//
// Card failures never fail the batch. They are returned in the Report as
// drops and logged, so callers can tell a short mosaic from a complete one.
package shop
