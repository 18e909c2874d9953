package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"dry-run.txt":            {Data: []byte("Information about dry-run mode")},
		"presets.md":             {Data: []byte("# Presets\n\nHow presets are laid out")},
		"merge.txxt":             {Data: []byte("Merge Guide\n===========")},
		"ignore.json":            {Data: []byte("This should be ignored")},
		"option-force.txt":       {Data: []byte("Force help")},
		"advanced/sources.txt":   {Data: []byte("Source help")},
		"advanced/notes.unknown": {Data: []byte("nope")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"dry-run", true, "Information about dry-run mode"},
			{"presets", true, "# Presets\n\nHow presets are laid out"},
			{"merge", false, ""},
			{"ignore", false, ""},
			{"sources", true, "Source help"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"merge"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"dry-run", "dry-run", true},
		{"option-force", "option-force", true},
		{"force", "option-force", true},
		{"--force", "option-force", true},
		{"-f", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_WriteList(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	var out bytes.Buffer
	tm.WriteList(&out, "aidot")

	assert.Equal(t, `Available help topics:

General topics:
  dry-run
  presets
  sources

Option topics:
  --force

Use 'aidot help <topic>' to read about a specific topic.
`, out.String())

	out.Reset()
	New(fstest.MapFS{}).WriteList(&out, "aidot")
	assert.Equal(t, "No help topics available.\n", out.String())
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Pull something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	_, err := Initialize(rootCmd, topicFS())
	require.NoError(t, err)
	return rootCmd, &out
}

func TestInitialize(t *testing.T) {
	rootCmd, _ := newApp(t)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		rootCmd, out := newApp(t)
		rootCmd.SetArgs([]string{"help", "dry-run"})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "Information about dry-run mode", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		rootCmd, out := newApp(t)
		rootCmd.SetArgs([]string{"help", "topics"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
	})

	t.Run("command falls back to cobra help", func(t *testing.T) {
		rootCmd, out := newApp(t)
		rootCmd.SetArgs([]string{"help", "pull"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Pull something")
	})
}

func TestGlamourRenderer_PassesNonMarkdown(t *testing.T) {
	r := NewGlamourRendererFor(false)
	assert.Equal(t, "notty", r.Style)
	assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))
	assert.Contains(t, r.Render("# Title\n\nBody", ".md"), "Body")
}
