package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gerrors "github.com/groupgen/groupgen/pkg/errors"
	"github.com/groupgen/groupgen/pkg/export"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
)

// exportParams holds the command-line flags for the export command.
type exportParams struct {
	group   string // root group name, picker when empty
	output  string // output .py path, stdout when empty
	nested  bool   // emit reachable groups as dependency routines
	assign  bool   // append the context-attachment helper
	noCache bool   // disable the generated-code cache
	refresh bool   // regenerate even on a cache hit
}

// exportCommand creates the export command, the main entry point of the CLI.
func (c *CLI) exportCommand() *cobra.Command {
	var params exportParams

	cmd := &cobra.Command{
		Use:   "export [library.json]",
		Short: "Generate the Python script for a node group",
		Long: `Generate the Python script for a node group.

The export command reads a library file, resolves the chosen group's
dependency closure, and emits a self-contained Python script that
rebuilds the group (nested groups first) when run inside the host.
The script is idempotent: groups that already exist are reused.

Without --group an interactive picker lists the library's groups.
Without --output the script is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.group, "group", "g", "", "root group name (interactive picker when omitted)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output .py file (stdout when omitted)")
	cmd.Flags().BoolVar(&params.nested, "nested", true, "emit reachable nested groups as dependency routines")
	cmd.Flags().BoolVar(&params.assign, "assign", true, "append the attachment helper for the root group's domain")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&params.refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// runExport loads the library, resolves and generates, and writes the script.
func (c *CLI) runExport(ctx context.Context, input string, params exportParams) error {
	lib, err := model.ReadLibraryFile(input)
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeInvalidLibrary, err, "load library %s", input)
	}

	group := params.group
	if group == "" {
		group, err = pickGroup(lib)
		if err != nil {
			return err
		}
	}
	if err := gerrors.ValidateGroupName(group); err != nil {
		return err
	}
	if params.output != "" {
		if err := gerrors.ValidateOutputPath(params.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := export.DefaultOptions()
	opts.Group = group
	opts.IncludeNested = params.nested
	opts.AutoAssign = params.assign
	opts.Refresh = params.refresh
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", group))
	spinner.Start()

	result, err := runner.Execute(ctx, registry.NewMemory(lib), opts)
	if err != nil {
		spinner.StopWithError(gerrors.UserMessage(err))
		return gerrors.FromEngine(err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %s", group))

	if params.output == "" {
		fmt.Print(result.Code)
		if result.WholeTreeWarning {
			fmt.Fprintln(os.Stderr, "warning: group looks like a whole tree (terminal node, no interface)")
		}
		return nil
	}

	if err := os.WriteFile(params.output, []byte(result.Code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", params.output, err)
	}

	printSuccess("Exported %s", StyleHighlight.Render(group))
	printFile(params.output)
	printStats(result.Stats.GroupCount, result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.CodeHit)
	if result.WholeTreeWarning {
		printWarning("%q looks like a whole tree, not a reusable group (terminal node, no interface)", group)
	}
	printNextStep("Visualize the dependency graph", fmt.Sprintf("groupgen visualize %s -g %q", input, group))
	return nil
}
