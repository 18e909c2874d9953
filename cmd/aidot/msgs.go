package aidot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "AI dotfiles: one preset for every AI coding assistant"
	MsgPullShort        = "Apply preset(s) to the tools of a project"
	MsgDiffShort        = "Show what pulling a preset would change"
	MsgDetectShort      = "Detect the AI tools used by a project"
	MsgStatusShort      = "Show the AI configuration of a project"
	MsgInitShort        = "Create a new preset"
	MsgRepoShort        = "Manage preset repositories"
	MsgRepoAddShort     = "Register a preset repository"
	MsgRepoRemoveShort  = "Remove a registered repository"
	MsgRepoListShort    = "List registered repositories"
	MsgRepoDefaultShort = "Set or unset the default flag of a repository"
	MsgCacheShort       = "Manage cached repository clones"
	MsgCacheListShort   = "List cached clones"
	MsgCacheUpdateShort = "Refresh cached clones"
	MsgCacheClearShort  = "Remove all cached clones"
	MsgTopicsShort      = "Display available documentation topics"
	MsgTopicsLong       = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort  = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice       = "\nDRY RUN MODE - No changes were made"
	MsgLoadingPreset      = "Loading preset from %s\n"
	MsgApplyingTo         = "Applying to: %s\n\n"
	MsgPresetCreated      = "Created preset in %s:\n"
	MsgFileItem           = "  ✓ %s\n"
	MsgNoDifferences      = "No differences."
	MsgNoRepositories     = "No repositories registered.\nUse 'aidot repo add <name> <url>' to register a preset repository."
	MsgRepoAdded          = "Registered repository '%s' (%s)\n"
	MsgRepoRemoved        = "Removed repository '%s'\n"
	MsgRepoDefaultSet     = "Repository '%s' default = %v\n"
	MsgCacheEmpty         = "Cache is empty."
	MsgCacheUpdated       = "Updated '%s'\n"
	MsgCacheCleared       = "Removed %d cached clone(s)\n"
	MsgNothingToUpdate    = "No git repositories to update."
	MsgLastPull           = "Last pull: %s from %s\n"
	MsgNeverPulled        = "No pull recorded for this project."
	MsgStatusProject      = "Project:"
	MsgStatusTools        = "Detected tools"
	MsgStatusFiles        = "Configuration files"
	MsgStatusRepositories = "Registered repositories"

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrNoSources     = "no preset given and no default repository configured"
	MsgErrForceAndSkip  = "--force and --skip cannot be used together"
	MsgErrTarget        = "invalid target directory: %w"
	MsgErrUnknownFormat = "invalid --format: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Preview changes without writing anything"
	MsgFlagForce          = "Overwrite existing files without asking"
	MsgFlagNonInteractive = "Never prompt; keep existing files unless --force is given"
	MsgFlagSkip           = "Keep every existing file without asking"
	MsgFlagTarget         = "Project directory to apply to"
	MsgFlagTools          = "Comma-separated tools to target (claude, cursor, copilot)"
	MsgFlagFormat         = "Output format (auto, term, text, json)"
	MsgFlagFromExisting   = "Build the preset from the AI tool files of this project directory"
	MsgFlagRepoLocal      = "Register a local directory (stored as an absolute path)"
	MsgFlagRepoDefault    = "Mark the repository as default"
	MsgFlagRepoDesc       = "Repository description"
	MsgFlagCacheAll       = "Update every registered git repository"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/pull-long.txt
	msgPullLongRaw string
	MsgPullLong    = strings.TrimSpace(msgPullLongRaw)

	//go:embed msgs/pull-example.txt
	msgPullExampleRaw string
	MsgPullExample    = strings.TrimRight(msgPullExampleRaw, "\n")

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/repo-long.txt
	msgRepoLongRaw string
	MsgRepoLong    = strings.TrimSpace(msgRepoLongRaw)

	//go:embed msgs/cache-long.txt
	msgCacheLongRaw string
	MsgCacheLong    = strings.TrimSpace(msgCacheLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
