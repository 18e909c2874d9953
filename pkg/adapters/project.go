package adapters

import "github.com/arthur-debert/aidot/pkg/types"

// Project copies the preset's root section verbatim into the target
// directory. It is always applicable and runs before the tool adapters.
type Project struct{ layout }

func NewProject() *Project {
	return &Project{layout{
		name:   "Project",
		id:     "project",
		always: true,
		mappings: []Mapping{
			{Section: types.SectionRoot, Engine: EngineOneToOne, Path: ""},
		},
	}}
}
