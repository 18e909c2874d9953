package merge_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/content"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "/project"

func writeFile(t *testing.T, fsys types.FS, rel, text string) {
	t.Helper()
	require.NoError(t, filesystem.WriteAtomic(fsys, filepath.Join(target, filepath.FromSlash(rel)), []byte(text)))
}

func readFile(t *testing.T, fsys types.FS, rel string) string {
	t.Helper()
	data, err := fsys.ReadFile(filepath.Join(target, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func files(section string, pairs ...string) []types.PresetFile {
	var out []types.PresetFile
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.PresetFile{RelativePath: section + "/" + pairs[i], Content: pairs[i+1]})
	}
	return out
}

func TestOneToOne_Plan(t *testing.T) {
	engine := merge.OneToOne{
		Section: types.SectionCommands,
		Dir:     ".github/prompts",
		Rename:  func(name string) string { return content.AddSuffixBeforeExt(name, "prompt") },
	}

	writes, err := engine.Plan(files("commands", "build.md", "X", "git/commit.md", "Y"))
	require.NoError(t, err)
	require.Len(t, writes, 2)

	assert.Equal(t, ".github/prompts/build.prompt.md", writes[0].Display)
	assert.Equal(t, "X", writes[0].Content)
	assert.Equal(t, "commands", writes[0].Section)
	assert.Equal(t, ".github/prompts/git/commit.prompt.md", writes[1].Display)
	assert.Equal(t, filepath.Join(target, ".github", "prompts", "build.prompt.md"), writes[0].Target(target))
}

func TestOneToOne_RootAndTransform(t *testing.T) {
	engine := merge.OneToOne{Section: types.SectionRoot}
	writes, err := engine.Plan(files("root", "README.md", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "README.md", writes[0].Display)

	failing := merge.OneToOne{
		Section:   types.SectionRules,
		Dir:       ".cursor/rules",
		Transform: func(string) (string, error) { return "", errors.New("boom") },
	}
	_, err = failing.Plan(files("rules", "a.md", "x"))
	assert.Error(t, err)
}

func TestConcat_Plan(t *testing.T) {
	engine := merge.Concat{Section: types.SectionMemory, File: ".claude/CLAUDE.md"}

	t.Run("new file holds exactly the preset", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		w, err := engine.Plan(fsys, target, files("memory", "a.md", "# A"), types.Accumulate)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, "# A", w.Content)
		assert.Equal(t, "memory", w.Section)
	})

	t.Run("files joined in order", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		w, err := engine.Plan(fsys, target, files("memory", "a.md", "# A", "b.md", "# B"), types.Replace)
		require.NoError(t, err)
		assert.Equal(t, "# A\n\n---\n\n# B", w.Content)
	})

	t.Run("accumulate appends to existing", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		writeFile(t, fsys, ".claude/CLAUDE.md", "# A\n")
		w, err := engine.Plan(fsys, target, files("memory", "b.md", "# B"), types.Accumulate)
		require.NoError(t, err)
		assert.Equal(t, "# A\n\n---\n\n# B", w.Content)
	})

	t.Run("replace ignores existing", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		writeFile(t, fsys, ".claude/CLAUDE.md", "# A\n")
		w, err := engine.Plan(fsys, target, files("memory", "b.md", "# B"), types.Replace)
		require.NoError(t, err)
		assert.Equal(t, "# B", w.Content)
	})

	t.Run("no files no write", func(t *testing.T) {
		w, err := engine.Plan(filesystem.NewMemory(), target, nil, types.Accumulate)
		require.NoError(t, err)
		assert.Nil(t, w)
	})
}

func TestAccumulate(t *testing.T) {
	tests := []struct {
		name, existing, addition, want string
	}{
		{"grows", "E", "N", "E\n\n---\n\nN"},
		{"already equal", "N\n", "N", "N\n"},
		{"already appended", "E\n\n---\n\nN  \n", "N", "E\n\n---\n\nN  \n"},
		{"blank existing", "\n", "N", "N"},
		{"blank addition", "E", " ", "E"},
		{"substring elsewhere still appends", "N then more", "N", "N then more\n\n---\n\nN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge.Accumulate(tt.existing, tt.addition))
		})
	}

	t.Run("existing prefix and new suffix", func(t *testing.T) {
		got := merge.Accumulate("# Local notes", "# Team rules")
		assert.True(t, strings.HasPrefix(got, "# Local notes"))
		assert.True(t, strings.HasSuffix(got, "# Team rules"))
		assert.Contains(t, got, merge.Separator)
	})
}

func TestKeyedJSON_Wrapped(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFile(t, fsys, ".claude/settings.local.json", `{"permissions": {"allow": []}, "mcpServers": {"local": {"command": "x"}}}`)

	engine := merge.KeyedJSON{File: ".claude/settings.local.json"}
	w, err := engine.Plan(fsys, target, []merge.JSONPart{{
		Section:    types.SectionMCP,
		Kind:       merge.JSONWrapped,
		WrapperKey: "mcpServers",
		Files:      files("mcp", "github.json", `{"command": "npx", "args": ["gh"]}`),
	}})
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.JSONEq(t, `{
		"permissions": {"allow": []},
		"mcpServers": {"local": {"command": "x"}, "github": {"command": "npx", "args": ["gh"]}}
	}`, w.Content)
	assert.True(t, strings.Index(w.Content, "permissions") < strings.Index(w.Content, "mcpServers"), "existing key order is kept")
	assert.True(t, strings.HasSuffix(w.Content, "}\n"))
}

func TestKeyedJSON_LastFileWins(t *testing.T) {
	engine := merge.KeyedJSON{File: ".cursor/mcp.json"}
	w, err := engine.Plan(filesystem.NewMemory(), target, []merge.JSONPart{{
		Section:    types.SectionMCP,
		Kind:       merge.JSONWrapped,
		WrapperKey: "mcpServers",
		Files: files("mcp",
			"team/github.json", `{"command": "first"}`,
			"personal/github.json", `{"command": "second"}`),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcpServers": {"github": {"command": "second"}}}`, w.Content)
}

func TestKeyedJSON_FlatAndEntries(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFile(t, fsys, "settings.json", `{"theme": "dark", "model": "old"}`)

	engine := merge.KeyedJSON{File: "settings.json"}
	w, err := engine.Plan(fsys, target, []merge.JSONPart{
		{Section: types.SectionSettings, Kind: merge.JSONFlat, Files: files("settings",
			"a.json", `{"model": "a", "x": 1}`,
			"b.json", `{"model": "b"}`)},
		{Section: types.SectionHooks, Kind: merge.JSONEntries, Files: files("hooks", "pre-commit.json", `{"run": "lint"}`)},
	})
	require.NoError(t, err)

	assert.Equal(t, "settings+hooks", w.Section)
	assert.JSONEq(t, `{"theme": "dark", "model": "b", "x": 1, "pre-commit": {"run": "lint"}}`, w.Content)
}

func TestKeyedJSON_Replace(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFile(t, fsys, "mcp.json", `{"other": true, "servers": {"old": {}}}`)
	engine := merge.KeyedJSON{File: "mcp.json"}

	w, err := engine.Plan(fsys, target, []merge.JSONPart{{
		Section: types.SectionMCP, Kind: merge.JSONWrapped, WrapperKey: "servers", Strategy: types.Replace,
		Files: files("mcp", "new.json", `{}`),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"other": true, "servers": {"new": {}}}`, w.Content)

	w, err = engine.Plan(fsys, target, []merge.JSONPart{{
		Section: types.SectionSettings, Kind: merge.JSONFlat, Strategy: types.Replace,
		Files: files("settings", "s.json", `{"only": 1}`),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"only": 1}`, w.Content)
}

func TestKeyedJSON_Errors(t *testing.T) {
	engine := merge.KeyedJSON{File: "mcp.json"}
	part := func(content string) []merge.JSONPart {
		return []merge.JSONPart{{Section: types.SectionMCP, Kind: merge.JSONWrapped, WrapperKey: "servers",
			Files: files("mcp", "x.json", content)}}
	}

	_, err := engine.Plan(filesystem.NewMemory(), target, part(`{"broken": `))
	assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrJSONParse))
	assert.Contains(t, err.Error(), "mcp/x.json")

	_, err = engine.Plan(filesystem.NewMemory(), target, part(`["not", "object"]`))
	assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrJSONParse))

	fsys := filesystem.NewMemory()
	writeFile(t, fsys, "mcp.json", `not json`)
	_, err = engine.Plan(fsys, target, part(`{}`))
	assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrJSONParse))

	fsys = filesystem.NewMemory()
	writeFile(t, fsys, "mcp.json", `{"servers": "nope"}`)
	_, err = engine.Plan(fsys, target, part(`{}`))
	assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrJSONParse))

	w, err := engine.Plan(fsys, target, []merge.JSONPart{{Section: types.SectionMCP}})
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestClassify(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFile(t, fsys, "same.md", "X  \r\n")
	writeFile(t, fsys, "diff.md", "old")

	newChange, err := merge.Classify(fsys, target, merge.Write{Display: "new.md", Section: "commands", Content: "X"})
	require.NoError(t, err)
	assert.False(t, newChange.IsConflict)
	require.NotNil(t, newChange.PreviewContent)
	assert.Equal(t, "X", *newChange.PreviewContent)

	same, err := merge.Classify(fsys, target, merge.Write{Display: "same.md", Content: "X"})
	require.NoError(t, err)
	assert.True(t, same.IsConflict)
	assert.True(t, same.IsIdentical)

	diff, err := merge.Classify(fsys, target, merge.Write{Display: "diff.md", Content: "new"})
	require.NoError(t, err)
	assert.True(t, diff.IsConflict)
	assert.False(t, diff.IsIdentical)
}

func TestWriter_Apply(t *testing.T) {
	setup := func() types.FS {
		fsys := filesystem.NewMemory()
		writeFile(t, fsys, "same.md", "X\n")
		writeFile(t, fsys, "diff.md", "old")
		return fsys
	}
	writes := []merge.Write{
		{Display: "new/deep.md", Content: "N"},
		{Display: "same.md", Content: "X"},
		{Display: "diff.md", Content: "new"},
	}

	t.Run("force", func(t *testing.T) {
		fsys := setup()
		wr := &merge.Writer{FS: fsys}
		result := &types.ApplyResult{}
		for _, w := range writes {
			require.NoError(t, wr.Apply(target, w, conflict.Force(), result))
		}
		assert.Equal(t, []string{"new/deep.md"}, result.Created)
		assert.Equal(t, []string{"diff.md"}, result.Updated)
		assert.Equal(t, []string{"same.md"}, result.Unchanged)
		assert.Empty(t, result.Skipped)
		assert.Equal(t, "new", readFile(t, fsys, "diff.md"))
		assert.Equal(t, "X\n", readFile(t, fsys, "same.md"), "identical files are not rewritten")
	})

	t.Run("skip", func(t *testing.T) {
		fsys := setup()
		wr := &merge.Writer{FS: fsys}
		result := &types.ApplyResult{}
		for _, w := range writes {
			require.NoError(t, wr.Apply(target, w, conflict.Skip(), result))
		}
		assert.Equal(t, []string{"diff.md"}, result.Skipped)
		assert.Equal(t, "old", readFile(t, fsys, "diff.md"))
	})

	t.Run("ask shows diff and obeys answer", func(t *testing.T) {
		fsys := setup()
		out := &bytes.Buffer{}
		wr := &merge.Writer{FS: fsys, Console: conflict.NewStreamConsole(strings.NewReader("o\n"), out)}
		result := &types.ApplyResult{}
		require.NoError(t, wr.Apply(target, writes[2], conflict.Ask(), result))

		assert.Equal(t, []string{"diff.md"}, result.Updated)
		assert.Contains(t, out.String(), "--- (local) diff.md")
		assert.Contains(t, out.String(), "Conflict: 'diff.md' already exists.")
	})
}

func TestScanApplyAgreement(t *testing.T) {
	for _, mode := range []func() *conflict.Mode{conflict.Force, conflict.Skip} {
		fsys := filesystem.NewMemory()
		writeFile(t, fsys, "a.md", "A")
		writeFile(t, fsys, "b.md", "B")
		writes := []merge.Write{
			{Display: "a.md", Content: "A2"},
			{Display: "b.md", Content: "B"},
			{Display: "c.md", Content: "C"},
		}

		var conflicting, created, identical []string
		for _, w := range writes {
			change, err := merge.Classify(fsys, target, w)
			require.NoError(t, err)
			switch {
			case change.IsIdentical:
				identical = append(identical, change.Path)
			case change.IsConflict:
				conflicting = append(conflicting, change.Path)
			default:
				created = append(created, change.Path)
			}
		}

		result := &types.ApplyResult{}
		wr := &merge.Writer{FS: fsys}
		m := mode()
		for _, w := range writes {
			require.NoError(t, wr.Apply(target, w, m, result))
		}

		assert.ElementsMatch(t, conflicting, append(append([]string{}, result.Updated...), result.Skipped...))
		assert.ElementsMatch(t, created, result.Created)
		assert.ElementsMatch(t, identical, result.Unchanged)
	}
}
