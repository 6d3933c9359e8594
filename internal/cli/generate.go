package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/groundbox/pkg/export"
	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/kernel/sdfx"
	"github.com/chazu/groundbox/pkg/params"
	"github.com/chazu/groundbox/pkg/part"
)

const defaultTolerance = 0.1

// generateOpts holds the flags shared by the geometry commands.
type generateOpts struct {
	part       string  // part name, or "all"
	paramsPath string  // JSON parameter file overlaying the defaults
	output     string  // output directory
	tolerance  float64 // tessellation chord deviation in mm
	position   string  // drain position override: left, right, rear
	format     string  // mesh format: stl or 3mf
}

func (o *generateOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.paramsPath, "params", "", "JSON parameter file (defaults apply to omitted fields)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "output", "output directory")
	cmd.Flags().Float64Var(&o.tolerance, "tolerance", defaultTolerance, "tessellation tolerance in mm")
	cmd.Flags().StringVar(&o.position, "position", "", "drain position: left, right, rear")
	cmd.Flags().StringVarP(&o.format, "format", "f", "stl", "mesh format: stl, 3mf")
}

// loadParams reads the parameter file over the defaults and applies
// the position override. Validation happens in part.NewBuilder.
func (o *generateOpts) loadParams() (params.Set, error) {
	set := params.Default()
	if o.paramsPath != "" {
		data, err := os.ReadFile(o.paramsPath)
		if err != nil {
			return set, fmt.Errorf("reading parameters: %w", err)
		}
		if err := json.Unmarshal(data, &set); err != nil {
			return set, fmt.Errorf("parsing parameters: %w", err)
		}
	}
	if o.position != "" {
		set.Position = params.Position(o.position)
	}
	return set, nil
}

// setup builds the part builder and exporter the geometry commands
// share.
func (o *generateOpts) setup(ctx context.Context) (*part.Builder, *export.Exporter, error) {
	set, err := o.loadParams()
	if err != nil {
		return nil, nil, err
	}
	logger := loggerFromContext(ctx)
	b, err := part.NewBuilder(sdfx.New(), &set, logger)
	if err != nil {
		return nil, nil, err
	}
	return b, export.New(b.Kernel, o.output, o.tolerance, logger), nil
}

// write exports the solid in the selected format and returns the
// file path.
func (o *generateOpts) write(e *export.Exporter, name string, s kernel.Solid) (string, error) {
	if o.format == "3mf" {
		return e.ThreeMF(name, s)
	}
	return e.STL(name, s)
}

// partNames lists every part buildPart knows, in export order.
var partNames = []string{
	"box", "lid", "lid_integrated", "scraper", "scraper_pins",
	"storage_scraper", "spout", "seal_ring", "cap", "fit_test",
}

// allParts is the production print set run by `generate --part all`
// and by the job server.
var allParts = []string{
	"box", "lid", "scraper", "storage_scraper", "spout",
	"seal_ring", "cap", "fit_test",
}

func buildPart(b *part.Builder, name string) (kernel.Solid, error) {
	switch name {
	case "box":
		return b.Box()
	case "lid":
		return b.Lid(false)
	case "lid_integrated":
		return b.Lid(true)
	case "scraper":
		return b.Scraper(part.ScraperNailInserts)
	case "scraper_pins":
		return b.Scraper(part.ScraperPrintedPins)
	case "storage_scraper":
		return b.StorageScraper()
	case "spout":
		return b.SpoutForPrinting()
	case "seal_ring":
		return b.SealRing()
	case "cap":
		return b.Cap()
	case "fit_test":
		return b.FitTest()
	default:
		return nil, fmt.Errorf("unknown part %q (have %v)", name, partNames)
	}
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate printable part meshes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), &opts)
		},
	}
	cmd.Flags().StringVarP(&opts.part, "part", "p", "all", "part to generate, or all")
	opts.register(cmd)
	return cmd
}

func runGenerate(ctx context.Context, opts *generateOpts) error {
	b, e, err := opts.setup(ctx)
	if err != nil {
		return err
	}

	names := []string{opts.part}
	if opts.part == "all" {
		names = allParts
	}

	// Parts share no mutable state, so independent builds can run in
	// parallel. Tessellation dominates, keep it to one job per core.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := buildPart(b, name)
			if err != nil {
				return fmt.Errorf("building %s: %w", name, err)
			}
			if _, err := opts.write(e, name, s); err != nil {
				return fmt.Errorf("exporting %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
