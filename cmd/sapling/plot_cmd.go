package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/plot"
	"github.com/spf13/cobra"
)

type plotCmdConfig struct {
	*rootCmdConfig
	data          *datasetConfig
	output        string
	x, y          string
	width, height int
}

func plotCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &plotCmdConfig{rootCmdConfig: rootConfig, data: &datasetConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot a dataset",
		Long:  `Draw an SVG scatter plot of two features of a dataset, with examples coloured by their label.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx, cancel := commandContext()
			defer cancel()
			md, err := config.data.metadata()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			d, md, err := config.data.load(ctx, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			xAxis, err := resolveAxis(md, config.x)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			yAxis, err := resolveAxis(md, config.y)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			w, err := createOutput(config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			r := plot.NewRenderer(w)
			r.Width, r.Height = config.width, config.height
			r.XAxis, r.YAxis = xAxis, yAxis
			r.XLabel, r.YLabel = md.Features[xAxis].Name(), md.Features[yAxis].Name()
			config.Logf("Plotting %s against %s for %d samples...", md.Features[xAxis].Name(), md.Features[yAxis].Name(), d.Len())
			err = r.Render(d)
			if err == nil {
				err = w.Close()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "plotting: %v\n", err)
				os.Exit(6)
			}
		},
	}
	config.data.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the SVG plot will be written (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.x), "x", "0", "name or index of the feature on the horizontal axis")
	cmd.PersistentFlags().StringVar(&(config.y), "y", "1", "name or index of the feature on the vertical axis")
	cmd.PersistentFlags().IntVar(&(config.width), "width", 640, "width of the plot in points")
	cmd.PersistentFlags().IntVar(&(config.height), "height", 480, "height of the plot in points")
	return cmd
}

func (pcc *plotCmdConfig) Validate() error {
	err := pcc.data.Validate()
	if err != nil {
		return err
	}
	if pcc.width <= 0 || pcc.height <= 0 {
		return fmt.Errorf("plot dimensions must be positive, got %dx%d", pcc.width, pcc.height)
	}
	return nil
}

// resolveAxis returns the axis of the feature with the given name or, if no
// feature has that name, the axis the name reads as.
func resolveAxis(md *feature.Metadata, name string) (int, error) {
	if axis, ok := md.Axis(name); ok {
		return axis, nil
	}
	axis, err := strconv.Atoi(name)
	if err != nil || axis < 0 || axis >= len(md.Features) {
		return 0, fmt.Errorf("unknown feature %q", name)
	}
	return axis, nil
}
