// Package model defines the in-memory representation of an action-based
// planning problem: fluents with their initial values, instantaneous and
// durative actions, effects, timings and goals.
//
// The model is a plain mutable aggregate. Expression trees held by the model
// come from package expr and are immutable, so they can be shared freely
// between a problem and its clones.
package model
