package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/groundbox/pkg/assembly"
)

func newAssemblyCmd() *cobra.Command {
	var (
		opts  generateOpts
		split bool
	)

	cmd := &cobra.Command{
		Use:   "assembly",
		Short: "Export the assembled container as one mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssembly(cmd.Context(), &opts, split)
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "export each placed part as its own mesh")
	opts.register(cmd)
	return cmd
}

func runAssembly(ctx context.Context, opts *generateOpts, split bool) error {
	b, e, err := opts.setup(ctx)
	if err != nil {
		return err
	}
	a := assembly.New(b)

	if !split {
		s, err := a.Assembly()
		if err != nil {
			return err
		}
		_, err = opts.write(e, "assembly", s)
		return err
	}

	placements, err := a.Placements()
	if err != nil {
		return err
	}
	for _, p := range placements {
		if _, err := opts.write(e, "assembly_"+p.Name, p.Solid); err != nil {
			return fmt.Errorf("exporting %s: %w", p.Name, err)
		}
	}
	return nil
}

func newAnimateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Export the assembly animation frames",
		Long:  "Animate exports the 14-stage assembly sequence as one mesh per frame, numbered in order: seal ring and spout onto the drain, lid onto the box, scraper into the lid socket.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd.Context(), &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func runAnimate(ctx context.Context, opts *generateOpts) error {
	b, e, err := opts.setup(ctx)
	if err != nil {
		return err
	}
	frames, err := assembly.New(b).AnimationFrames()
	if err != nil {
		return err
	}
	for _, f := range frames {
		name := fmt.Sprintf("frame_%02d_%s", f.Index, f.Name)
		if _, err := opts.write(e, name, f.Solid); err != nil {
			return fmt.Errorf("exporting frame %d: %w", f.Index, err)
		}
	}
	return nil
}

func newFitTestCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "fittest",
		Short: "Export the thread and bayonet fit-test plate",
		Long:  "Fittest exports a single bed-arranged plate of reduced coupons: the drain wall with its internal thread, a matching short spout, a lid corner with the bayonet socket, a pinned scraper, the seal ring and the cap. Print it to verify fits before committing to the full parts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, e, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			s, err := b.FitTest()
			if err != nil {
				return err
			}
			_, err = opts.write(e, "fit_test", s)
			return err
		},
	}
	opts.register(cmd)
	return cmd
}
