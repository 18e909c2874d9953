package conflict_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(answers ...string) (*conflict.StreamConsole, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")
	if len(answers) == 0 {
		in = strings.NewReader("")
	}
	return conflict.NewStreamConsole(in, out), out
}

func strPtr(s string) *string { return &s }

func TestForceAndSkip(t *testing.T) {
	console, out := scripted()

	force := conflict.Force()
	assert.True(t, force.Resolve(console, "a.md", nil, nil))
	assert.Equal(t, conflict.KindForce, force.Kind())

	skip := conflict.Skip()
	assert.False(t, skip.Resolve(console, "a.md", strPtr("x"), strPtr("y")))
	assert.Equal(t, conflict.KindSkip, skip.Kind())

	assert.Empty(t, out.String(), "standing policies never prompt")
}

func TestAsk_SingleAnswersKeepAsking(t *testing.T) {
	console, out := scripted("o", "s")
	mode := conflict.Ask()

	assert.True(t, mode.Resolve(console, "a.md", nil, nil))
	assert.Equal(t, conflict.KindAsk, mode.Kind())
	assert.False(t, mode.Resolve(console, "b.md", nil, nil))
	assert.Equal(t, conflict.KindAsk, mode.Kind())

	assert.Contains(t, out.String(), "Conflict: 'a.md' already exists. [o]verwrite / [s]kip / [O]verwrite all / [S]kip all? ")
}

func TestAsk_AllAnswersEscalate(t *testing.T) {
	t.Run("overwrite all", func(t *testing.T) {
		console, _ := scripted("O")
		mode := conflict.Ask()

		assert.True(t, mode.Resolve(console, "a.md", nil, nil))
		assert.Equal(t, conflict.KindForce, mode.Kind())
		// no input left: a further prompt would read EOF and skip
		assert.True(t, mode.Resolve(console, "b.md", nil, nil))
	})

	t.Run("skip all", func(t *testing.T) {
		console, _ := scripted("S")
		mode := conflict.Ask()

		assert.False(t, mode.Resolve(console, "a.md", nil, nil))
		assert.Equal(t, conflict.KindSkip, mode.Kind())
		assert.False(t, mode.Resolve(console, "b.md", nil, nil))
	})

	t.Run("aliases", func(t *testing.T) {
		for _, answer := range []string{"O", "a", "all"} {
			console, _ := scripted(answer)
			mode := conflict.Ask()
			assert.True(t, mode.Resolve(console, "a.md", nil, nil), answer)
			assert.Equal(t, conflict.KindForce, mode.Kind(), answer)
		}
		console, _ := scripted("N")
		mode := conflict.Ask()
		assert.False(t, mode.Resolve(console, "a.md", nil, nil))
		assert.Equal(t, conflict.KindSkip, mode.Kind())
	})
}

func TestAsk_InvalidAnswerReprompts(t *testing.T) {
	console, out := scripted("maybe", "yes")
	mode := conflict.Ask()

	assert.True(t, mode.Resolve(console, "a.md", nil, nil))
	assert.Contains(t, out.String(), "Please enter 'o', 's', 'd', 'O', or 'S'")
	assert.Equal(t, 2, strings.Count(out.String(), "Conflict: 'a.md'"))
}

func TestAsk_UpperCaseAliasesAreNotAccepted(t *testing.T) {
	console, out := scripted("A", "Y", "YES", "s")
	mode := conflict.Ask()

	assert.False(t, mode.Resolve(console, "a.md", nil, nil))
	assert.Equal(t, conflict.KindAsk, mode.Kind())
	assert.Equal(t, 4, strings.Count(out.String(), "Conflict: 'a.md'"))
}

func TestAsk_DiffShownFirstAndOnRequest(t *testing.T) {
	console, out := scripted("d", "o")
	mode := conflict.Ask()

	ok := mode.Resolve(console, "CLAUDE.md", strPtr("# A\n"), strPtr("# B\n"))

	assert.True(t, ok)
	assert.Equal(t, 2, strings.Count(out.String(), "--- (local) CLAUDE.md"))
	assert.Contains(t, out.String(), "+++ (preset) CLAUDE.md")
	assert.Contains(t, out.String(), "[d]iff / ")
}

func TestAsk_DiffUnavailableIsInvalid(t *testing.T) {
	console, out := scripted("d", "s")
	mode := conflict.Ask()

	assert.False(t, mode.Resolve(console, "a.md", nil, strPtr("x")))
	assert.Contains(t, out.String(), "Please enter")
	assert.NotContains(t, out.String(), "[d]iff")
}

func TestAsk_EmptyAnswerSkips(t *testing.T) {
	console, _ := scripted("")
	mode := conflict.Ask()
	assert.False(t, mode.Resolve(console, "a.md", nil, nil))
	assert.Equal(t, conflict.KindAsk, mode.Kind())
}

func TestAsk_UnreadableInputSkips(t *testing.T) {
	console, _ := scripted()
	mode := conflict.Ask()
	assert.False(t, mode.Resolve(console, "a.md", nil, nil))
	assert.Equal(t, conflict.KindAsk, mode.Kind())

	noInput := conflict.NewStreamConsole(nil, nil)
	assert.False(t, mode.Resolve(noInput, "a.md", nil, nil))

	assert.False(t, mode.Resolve(nil, "a.md", nil, nil))
}

func TestPreResolved(t *testing.T) {
	t.Run("decisions win", func(t *testing.T) {
		console, out := scripted()
		yes := true
		mode := conflict.PreResolved(map[string]bool{"a.md": false}, &yes)

		assert.False(t, mode.Resolve(console, "a.md", nil, nil))
		assert.True(t, mode.Resolve(console, "b.md", nil, nil))
		assert.Empty(t, out.String())
	})

	t.Run("missing without fallback prompts inline", func(t *testing.T) {
		console, out := scripted("o", "O")
		mode := conflict.PreResolved(map[string]bool{"a.md": false}, nil)

		assert.True(t, mode.Resolve(console, "b.md", nil, nil))
		_, hasFallback := mode.Fallback()
		assert.False(t, hasFallback)

		assert.True(t, mode.Resolve(console, "c.md", nil, nil))
		fallback, hasFallback := mode.Fallback()
		assert.True(t, hasFallback)
		assert.True(t, fallback)
		assert.Equal(t, conflict.KindPreResolved, mode.Kind())

		_, recorded := mode.Decision("c.md")
		assert.False(t, recorded, "all answers set the fallback, not a decision")
		assert.False(t, mode.Resolve(console, "a.md", nil, nil))
		assert.True(t, mode.Resolve(console, "d.md", nil, nil))
		assert.Equal(t, 2, strings.Count(out.String(), "Conflict:"))
	})
}

func TestPreResolve(t *testing.T) {
	changes := []types.PendingChange{
		{Path: "new.md"},
		{Path: "a.md", IsConflict: true, PreviewContent: strPtr("new a")},
		{Path: "same.md", IsConflict: true, IsIdentical: true},
		{Path: "b.md", IsConflict: true, PreviewContent: strPtr("new b")},
		{Path: "c.md", IsConflict: true, PreviewContent: strPtr("new c")},
	}

	t.Run("per file answers", func(t *testing.T) {
		console, out := scripted("o", "s", "o")
		loaded := []string{}
		mode := conflict.PreResolve(console, changes, func(c types.PendingChange) *string {
			loaded = append(loaded, c.Path)
			return strPtr("old")
		})

		require.Equal(t, conflict.KindPreResolved, mode.Kind())
		for path, want := range map[string]bool{"a.md": true, "b.md": false, "c.md": true} {
			got, ok := mode.Decision(path)
			require.True(t, ok, path)
			assert.Equal(t, want, got, path)
		}
		_, ok := mode.Decision("same.md")
		assert.False(t, ok)
		assert.Equal(t, []string{"a.md", "b.md", "c.md"}, loaded)
		assert.Contains(t, out.String(), "--- (local) a.md")
	})

	t.Run("all answer stops asking", func(t *testing.T) {
		console, out := scripted("o", "S")
		mode := conflict.PreResolve(console, changes, nil)

		got, ok := mode.Decision("a.md")
		require.True(t, ok)
		assert.True(t, got)
		_, ok = mode.Decision("b.md")
		assert.False(t, ok)
		fallback, ok := mode.Fallback()
		require.True(t, ok)
		assert.False(t, fallback)
		assert.Equal(t, 2, strings.Count(out.String(), "Conflict:"))
		assert.False(t, mode.Resolve(console, "c.md", nil, nil))
	})
}
