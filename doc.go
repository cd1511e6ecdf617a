// Package tnucheck verifies scheduling properties of temporal constraint
// networks with uncertainty and conditionals (CSTN/CSTNU and close
// variants).
//
// Given a directed multigraph whose nodes are timepoints and whose edges
// carry labeled integer weights — "if this conjunction of observed
// propositions holds, the delay from source to target is at most w" — the
// engine decides whether an execution strategy exists that keeps every
// active constraint satisfied regardless of how contingent durations and
// observed propositions turn out. For the non-conditional fragment
// (STN/STNU) this is classical all-pairs shortest-path consistency; for the
// conditional fragment it is a dynamic-consistency/dynamic-controllability
// check that propagates labeled values through the network until a fixed
// point or a negative self-loop is reached.
//
// The module is organized bottom-up:
//
//	proposition/  — the finite alphabet of observable Booleans and their
//	                four-valued literal states
//	label/        — immutable conjunctions of literals, packed two bits per
//	                proposition across two 32-bit words
//	alabel/       — the second, 64-bit alphabet of node names used by
//	                CSTNU's upper-case labels
//	labeledvalue/ — order-minimized Label->int and ALabel->LabeledIntMap
//	                containers, the central payload type on every edge
//	tngraph/      — the directed multigraph of timepoints, carrying
//	                STN/STNU/CSTN/CSTNU payloads simultaneously
//	engine/       — the worklist-driven propagation engine: initialization,
//	                the CSTN rule set (LP, R0, R3), the STN/STNU fragment's
//	                relaxation and lower-/upper-/cross-case rules, and the
//	                deterministic scheduler that drives them to a verdict
//	graphml/      — the GraphML reader/writer that is this module's
//	                external I/O contract
//	cmd/tnucheck/ — the command-line driver over graphml+engine
//
// See DESIGN.md for the grounding of every package's design choices.
package tnucheck
