package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	gerrors "github.com/groupgen/groupgen/pkg/errors"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/render"
	"github.com/groupgen/groupgen/pkg/resolve"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// visualizeParams holds the command-line flags for the visualize command.
type visualizeParams struct {
	group    string // root group name, picker when empty
	format   string // dot or svg
	output   string // output path, derived from input when empty
	detailed bool   // include ref counts in node labels
}

// visualizeCommand creates the visualize command for rendering dependency graphs.
func (c *CLI) visualizeCommand() *cobra.Command {
	params := visualizeParams{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "visualize [library.json]",
		Short: "Render a group's dependency graph as DOT or SVG",
		Long: `Render a group's dependency graph as DOT or SVG.

The visualize command resolves the group's dependency closure and draws
the group-to-group reference graph. The root group is highlighted; with
--detailed each node also shows how many groups it references and how
many reference it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateVizFormat(params.format); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.group, "group", "g", "", "root group name (interactive picker when omitted)")
	cmd.Flags().StringVarP(&params.format, "format", "f", params.format, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output file (derived from input when omitted)")
	cmd.Flags().BoolVar(&params.detailed, "detailed", false, "show reference counts in node labels")

	return cmd
}

// validateVizFormat checks that the format is either "dot" or "svg".
func validateVizFormat(f string) error {
	if f != formatDOT && f != formatSVG {
		return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", f)
	}
	return nil
}

// runVisualize resolves the closure and renders its dependency graph.
func (c *CLI) runVisualize(ctx context.Context, input string, params visualizeParams) error {
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

	closure, err := resolve.Build(ctx, registry.NewMemory(lib), group, true)
	if err != nil {
		return gerrors.FromEngine(err)
	}
	c.Logger.Infof("Resolved %d groups, %d references", closure.Graph.NodeCount(), closure.Graph.EdgeCount())

	dot := render.ToDOT(closure.Graph, render.Options{Root: group, Detailed: params.detailed})

	var data []byte
	switch params.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = render.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
	}

	output := params.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_deps." + params.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Visualized %s", StyleHighlight.Render(group))
	printFile(output)
	return nil
}
