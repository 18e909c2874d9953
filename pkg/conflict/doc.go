// Package conflict decides what happens when a write target already exists.
//
// A Mode is created once per run and threaded through every write. It starts
// as Force, Skip, Ask or PreResolved. Answering "overwrite all" or "skip all"
// at an Ask prompt turns the mode into Force or Skip for the rest of the run;
// under PreResolved the same answers set the fallback instead. Once a mode
// has become Force or Skip it never changes again.
//
// All interaction goes through the Console interface so prompts can be
// scripted in tests.
package conflict
