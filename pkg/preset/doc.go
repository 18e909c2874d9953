// Package preset reads and writes preset directories.
//
// A preset is a directory with one subdirectory per section (rules, memory,
// commands, mcp, hooks, agents, skills, settings, root) and an optional
// .aidot-config.toml describing it:
//
//	[metadata]
//	name = "team-preset"
//	version = "1.0.0"
//
//	[memory]
//	directory = "memory"
//	merge_strategy = "accumulate"
//
//	[rules]
//	files = ["rules/go.md"]
//
// When the config file is present only the sections it declares are read.
// Without it every known section directory is read. Hidden files are
// ignored.
package preset
