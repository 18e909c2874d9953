package types_test

import (
	"testing"

	"github.com/arthur-debert/aidot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMergeStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    types.MergeStrategy
		wantErr bool
	}{
		{"", types.Accumulate, false},
		{"concat", types.Accumulate, false},
		{"Accumulate", types.Accumulate, false},
		{"append", types.Accumulate, false},
		{"replace", types.Replace, false},
		{" overwrite ", types.Replace, false},
		{"merge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseMergeStrategy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreset_SectionAccessors(t *testing.T) {
	p := &types.Preset{}
	p.AddFile(types.SectionRules, types.PresetFile{RelativePath: "rules/a.md", Content: "A"})
	p.AddFile(types.SectionRules, types.PresetFile{RelativePath: "rules/b.md", Content: "B"})
	p.Sections = append(p.Sections, types.SectionFiles{Name: types.SectionMemory, Strategy: types.Replace})

	assert.Len(t, p.Files(types.SectionRules), 2)
	assert.True(t, p.HasSection(types.SectionRules))
	assert.False(t, p.HasSection(types.SectionMemory))
	assert.False(t, p.HasSection(types.SectionHooks))
	assert.Equal(t, types.Replace, p.Strategy(types.SectionMemory))
	assert.Equal(t, types.Accumulate, p.Strategy(types.SectionHooks))
	assert.Equal(t, 2, p.FileCount())
}

func TestSection_IsKnown(t *testing.T) {
	assert.True(t, types.SectionSkills.IsKnown())
	assert.False(t, types.Section("themes").IsKnown())
}

func TestScanResult_Classification(t *testing.T) {
	r := &types.ScanResult{Adapter: "Claude Code"}
	r.Add(types.PendingChange{Path: "new.md"})
	r.Add(types.PendingChange{Path: "diff.md", IsConflict: true})
	r.Add(types.PendingChange{Path: "same.md", IsConflict: true, IsIdentical: true})

	assert.Equal(t, "Claude Code", r.Changes[0].Adapter)
	assert.Len(t, r.Creates(), 1)
	assert.Len(t, r.Conflicts(), 1)
	assert.Equal(t, "diff.md", r.Conflicts()[0].Path)
	assert.Len(t, r.Identical(), 1)
	assert.True(t, r.HasConflicts())
	assert.True(t, r.HasChanges())

	same := &types.ScanResult{}
	same.Add(types.PendingChange{Path: "same.md", IsConflict: true, IsIdentical: true})
	assert.False(t, same.HasChanges())
	assert.False(t, same.HasConflicts())
}

func TestApplyResult_Merge(t *testing.T) {
	a := &types.ApplyResult{}
	a.AddCreated("a")
	a.AddSkipped("b")

	b := &types.ApplyResult{}
	b.AddUpdated("c")
	b.AddUnchanged("d")

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, []string{"a"}, a.Created)
	assert.Equal(t, []string{"c"}, a.Updated)
	assert.Equal(t, 4, a.Total())
	assert.Equal(t, 2, a.Changed())
}
