// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/tree/internal/commands"
	"github.com/temirov/tree/internal/config"
	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/services/clipboard"
	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/utils"
)

const (
	allFlagName       = "all"
	dirsOnlyFlagName  = "dirs-only"
	filesOnlyFlagName = "files-only"
	levelFlagName     = "level"
	sizeFlagName      = "size"
	timeFlagName      = "time"
	ignoreFlagName    = "ignore"
	patternFlagName   = "pattern"
	outputFlagName    = "output"
	noSortFlagName    = "no-sort"
	formatFlagName    = "format"
	copyFlagName      = "copy"
	configFlagName    = "config"
	verboseFlagName   = "verbose"
	versionFlagName   = "version"
	globalFlagName    = "global"
	forceFlagName     = "force"

	defaultPath = "."

	// directoryPattern matches the root-relative path of every directory and
	// implements --dirs-only and --files-only through ordinary pattern filtering.
	directoryPattern = "*/"

	versionTemplate            = "tree version: %s\n"
	outputWrittenFormat        = "Tree output written to: %s\n"
	configurationWrittenFormat = "Configuration written to: %s\n"

	rootUse              = "tree [path]"
	rootShortDescription = "display a directory tree"
	rootLongDescription  = `Render the directory hierarchy rooted at path (default ".") as an indented tree.
Directories are listed before files and sorted by name unless --no-sort is given.
Patterns containing "*" must match the whole path relative to the root, where "*"
matches any run of characters; other patterns match any path containing them.
Brace expansion such as *.{js,ts} is not supported: pass one --pattern per extension.`
	rootUsageExample = `  # Two levels deep with sizes and dates
  tree -L 2 -s -t

  # Skip dependencies and logs
  tree -I node_modules -I "*.log" ./project

  # Only Go sources, written to a file
  tree -P "*.go" -P "*/" -o tree.txt`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration file to ./.tree.yaml, or to ~/.tree/config.yaml with --global.
Values in the configuration file become defaults for the tree command; flags override them.`

	allFlagDescription       = "show hidden files and directories"
	dirsOnlyFlagDescription  = "show only directories"
	filesOnlyFlagDescription = "show only files"
	levelFlagDescription     = "max display depth of the directory tree (0 shows only the root)"
	sizeFlagDescription      = "show file sizes"
	timeFlagDescription      = "show last modification dates"
	ignoreFlagDescription    = "exclude entries matching the pattern (repeatable)"
	patternFlagDescription   = "include only entries matching the pattern (repeatable)"
	outputFlagDescription    = "write the tree to a file instead of stdout"
	noSortFlagDescription    = "do not sort files and directories"
	formatFlagDescription    = "output format: raw, json, or xml"
	copyFlagDescription      = "copy the rendered tree to the clipboard"
	configFlagDescription    = "path to a configuration file"
	verboseFlagDescription   = "report entries skipped because of I/O errors"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the global configuration file"
	forceFlagDescription     = "overwrite an existing configuration file"

	invalidFormatMessage      = "invalid format value '%s'"
	invalidLevelMessage       = "invalid level %d: must not be negative"
	errorLoadConfiguration    = "load configuration: %w"
	errorAbsoluteOutputFormat = "resolve output path %s: %w"
	errorWriteOutputFormat    = "write tree output to %s: %w"
	errorCopyOutputFormat     = "copy tree output to clipboard: %w"
	errorRenderFormat         = "render tree: %w"

	debugBuildingTreeMessage = "building tree"
)

// environment carries the collaborators of a command run. logLevel controls
// logger; when nil, --verbose leaves the level unchanged.
type environment struct {
	logger           *zap.Logger
	logLevel         *zap.AtomicLevel
	copier           clipboard.Copier
	workingDirectory string
}

// treeOptions stores the raw flag values of the tree command.
type treeOptions struct {
	showHidden  bool
	dirsOnly    bool
	filesOnly   bool
	level       int
	showSize    bool
	showDate    bool
	exclude     []string
	include     []string
	outputPath  string
	noSort      bool
	format      string
	copyOutput  bool
	configPath  string
	verbose     bool
	showVersion bool
}

// treeSettings is the outcome of merging flags, configuration files, and defaults.
type treeSettings struct {
	configuration types.Configuration
	format        string
	copyOutput    bool
}

// Execute runs the tree application. logLevel is raised to debug under --verbose.
func Execute(logger *zap.Logger, logLevel *zap.AtomicLevel) error {
	rootCommand := createRootCommand(environment{
		logger:   logger,
		logLevel: logLevel,
		copier:   clipboard.NewService(),
	})
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command rendering the tree.
func createRootCommand(env environment) *cobra.Command {
	if env.logger == nil {
		env.logger = zap.NewNop()
	}
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runTree(command, env, rootPath, options)
		},
	}

	flags := rootCommand.Flags()
	registerBooleanFlag(flags, &options.showHidden, allFlagName, "a", allFlagDescription)
	registerBooleanFlag(flags, &options.dirsOnly, dirsOnlyFlagName, "d", dirsOnlyFlagDescription)
	registerBooleanFlag(flags, &options.filesOnly, filesOnlyFlagName, "f", filesOnlyFlagDescription)
	flags.IntVarP(&options.level, levelFlagName, "L", 0, levelFlagDescription)
	registerBooleanFlag(flags, &options.showSize, sizeFlagName, "s", sizeFlagDescription)
	registerBooleanFlag(flags, &options.showDate, timeFlagName, "t", timeFlagDescription)
	flags.StringArrayVarP(&options.exclude, ignoreFlagName, "I", nil, ignoreFlagDescription)
	flags.StringArrayVarP(&options.include, patternFlagName, "P", nil, patternFlagDescription)
	flags.StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	registerBooleanFlag(flags, &options.noSort, noSortFlagName, "", noSortFlagDescription)
	flags.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flags, &options.copyOutput, copyFlagName, "c", copyFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flags, &options.verbose, verboseFlagName, "v", verboseFlagDescription)
	registerBooleanFlag(flags, &options.showVersion, versionFlagName, "", versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(env))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(env environment) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: env.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "g", globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, "", forceFlagDescription)
	return initCommand
}

// runTree renders the tree for rootPath and routes it to stdout, a file, and the clipboard.
func runTree(command *cobra.Command, env environment, rootPath string, options treeOptions) error {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: env.workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return fmt.Errorf(errorLoadConfiguration, loadError)
	}
	settings, settingsError := resolveTreeSettings(command, options, applicationConfiguration.Tree)
	if settingsError != nil {
		return settingsError
	}

	builder := commands.NewTreeBuilder(settings.configuration)
	if options.verbose {
		if env.logLevel != nil {
			env.logLevel.SetLevel(zapcore.DebugLevel)
		}
		builder.Warn = func(message string) {
			env.logger.Warn(message)
		}
	}
	env.logger.Debug(debugBuildingTreeMessage,
		zap.String("root", rootPath),
		zap.Int("maxDepth", settings.configuration.MaxDepth),
		zap.String("format", settings.format),
		zap.Strings("exclude", settings.configuration.ExcludePatterns),
		zap.Strings("include", settings.configuration.IncludePatterns),
	)
	node, buildError := builder.GetTreeData(rootPath)
	if buildError != nil {
		return buildError
	}

	rendered, renderError := output.Render(settings.format, node)
	if renderError != nil {
		return fmt.Errorf(errorRenderFormat, renderError)
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}

	if options.outputPath != "" {
		absoluteOutputPath, absoluteError := filepath.Abs(options.outputPath)
		if absoluteError != nil {
			return fmt.Errorf(errorAbsoluteOutputFormat, options.outputPath, absoluteError)
		}
		if writeError := os.WriteFile(absoluteOutputPath, []byte(rendered), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, absoluteOutputPath, writeError)
		}
		fmt.Fprintf(command.OutOrStdout(), outputWrittenFormat, absoluteOutputPath)
	} else {
		fmt.Fprint(command.OutOrStdout(), rendered)
	}

	if settings.copyOutput {
		if copyError := env.copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(errorCopyOutputFormat, copyError)
		}
	}
	return nil
}

// resolveTreeSettings merges explicitly set flags over configuration file values
// over built-in defaults. Pattern lists from both sources are combined.
func resolveTreeSettings(command *cobra.Command, options treeOptions, fileConfiguration config.TreeConfiguration) (treeSettings, error) {
	flags := command.Flags()
	configuration := types.DefaultConfiguration()

	configuration.ShowHidden = chooseBool(flags.Changed(allFlagName), options.showHidden, fileConfiguration.ShowHidden, false)
	configuration.ShowSize = chooseBool(flags.Changed(sizeFlagName), options.showSize, fileConfiguration.ShowSize, false)
	configuration.ShowDate = chooseBool(flags.Changed(timeFlagName), options.showDate, fileConfiguration.ShowDate, false)
	configuration.Sort = chooseBool(flags.Changed(noSortFlagName), !options.noSort, fileConfiguration.Sort, true)

	switch {
	case flags.Changed(levelFlagName):
		if options.level < 0 {
			return treeSettings{}, fmt.Errorf(invalidLevelMessage, options.level)
		}
		configuration.MaxDepth = options.level
	case fileConfiguration.Level != nil:
		if *fileConfiguration.Level < 0 {
			return treeSettings{}, fmt.Errorf(invalidLevelMessage, *fileConfiguration.Level)
		}
		configuration.MaxDepth = *fileConfiguration.Level
	}

	configuration.ExcludePatterns = utils.DeduplicatePatterns(append(append([]string{}, fileConfiguration.Exclude...), options.exclude...))
	configuration.IncludePatterns = utils.DeduplicatePatterns(append(append([]string{}, fileConfiguration.Include...), options.include...))
	if options.dirsOnly {
		configuration.IncludePatterns = append(configuration.IncludePatterns, directoryPattern)
	}
	if options.filesOnly {
		configuration.ExcludePatterns = append(configuration.ExcludePatterns, directoryPattern)
	}

	format := types.FormatRaw
	if flags.Changed(formatFlagName) {
		format = options.format
	} else if fileConfiguration.Format != "" {
		format = fileConfiguration.Format
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if !output.IsSupportedFormat(format) {
		return treeSettings{}, fmt.Errorf(invalidFormatMessage, format)
	}

	return treeSettings{
		configuration: configuration,
		format:        format,
		copyOutput:    chooseBool(flags.Changed(copyFlagName), options.copyOutput, fileConfiguration.Copy, false),
	}, nil
}

func chooseBool(flagChanged bool, flagValue bool, configuredValue *bool, defaultValue bool) bool {
	if flagChanged {
		return flagValue
	}
	if configuredValue != nil {
		return *configuredValue
	}
	return defaultValue
}
