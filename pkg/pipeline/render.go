package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/workcell/pkg/render/floorplan"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res workcell.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = workcell.MarshalResult(res)
			data = append(data, '\n')
		case FormatYAML:
			data, err = workcell.MarshalResultYAML(res)
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = floorplan.ToDOT(res, floorplan.Options{ShowReach: opts.ShowReach})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = floorplan.RenderSVG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
