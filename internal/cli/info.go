package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gerrors "github.com/groupgen/groupgen/pkg/errors"
	"github.com/groupgen/groupgen/pkg/gen"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/resolve"
)

// infoCommand creates the info command showing resolution statistics.
func (c *CLI) infoCommand() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "info [library.json]",
		Short: "Show resolution statistics for a node group",
		Long: `Show resolution statistics for a node group.

The info command resolves the group's dependency closure without
generating any code and reports what an export would contain: the
emission order, node and link counts, and whether the group looks like
a whole tree rather than a reusable building block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], group)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "group name (interactive picker when omitted)")

	return cmd
}

// runInfo resolves the closure and prints its statistics.
func (c *CLI) runInfo(ctx context.Context, input, group string) error {
	lib, err := model.ReadLibraryFile(input)
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeInvalidLibrary, err, "load library %s", input)
	}

	if group == "" {
		group, err = pickGroup(lib)
		if err != nil {
			return err
		}
	}

	closure, err := resolve.Build(ctx, registry.NewMemory(lib), group, true)
	if err != nil {
		return gerrors.FromEngine(err)
	}
	ordered, err := closure.Order()
	if err != nil {
		return gerrors.FromEngine(err)
	}

	nodes, links := 0, 0
	for _, g := range ordered {
		nodes += len(g.Nodes)
		links += len(g.Links)
	}

	printKeyValue("Group", closure.Root.Name)
	printKeyValue("Domain", string(closure.Root.Domain))
	printKeyValue("Routine", gen.New().RoutineName(closure.Root.Name))
	printKeyValue("Interface", fmt.Sprintf("%d sockets", len(closure.Root.Interface)))
	printKeyValue("Nested", fmt.Sprintf("%d groups", closure.NestedCount()))
	printKeyValue("Nodes", fmt.Sprintf("%d", nodes))
	printKeyValue("Links", fmt.Sprintf("%d", links))

	if closure.NestedCount() > 0 {
		names := make([]string, 0, len(ordered)-1)
		for _, g := range ordered[:len(ordered)-1] {
			names = append(names, g.Name)
		}
		printDetail("Emission order: %s", strings.Join(append(names, closure.Root.Name), " → "))
	}

	if closure.Root.HasTerminal() && len(closure.Root.Interface) == 0 {
		printWarning("%q looks like a whole tree, not a reusable group (terminal node, no interface)", group)
	}

	return nil
}
