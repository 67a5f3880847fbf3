// Package intersection reads and writes intersection definition files.
//
// A definition names an intersection, gives its lane count and lists the
// routes (entrance → exit movements) that use it. Optional solver settings
// choose the independent-set strategy used for phase grouping. Files are
// TOML or JSON, selected by extension:
//
//	name  = "four-way"
//	lanes = 8
//
//	[solver]
//	strategy        = "exact"
//	max_exact_nodes = 24
//
//	[[routes]]
//	entrance = 0
//	exit     = 5
//
//	[[routes]]
//	entrance = 2
//	exit     = 7
//
// The equivalent JSON document is:
//
//	{"name": "four-way", "lanes": 8,
//	 "solver": {"strategy": "exact", "max_exact_nodes": 24},
//	 "routes": [{"entrance": 0, "exit": 5}, {"entrance": 2, "exit": 7}]}
//
// Decoding is strict: unknown keys are rejected so that typos such as
// "entrence" do not silently produce a route from lane 0.
package intersection
