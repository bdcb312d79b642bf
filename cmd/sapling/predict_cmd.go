package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	data   *datasetConfig
	tree   *treeConfig
	output string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{
		rootCmdConfig: rootConfig,
		data:          &datasetConfig{rootCmdConfig: rootConfig},
		tree:          &treeConfig{rootCmdConfig: rootConfig},
	}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the labels of a dataset",
		Long:  `Use a tree to predict the label of every example in a dataset, writing one label per line.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx, cancel := commandContext()
			defer cancel()
			t, err := config.tree.loadTree(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			md, err := config.data.metadata()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			d, _, err := config.data.load(ctx, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Predicting %s for %d samples...", t.Label, d.Len())
			labels, err := tree.PredictAll(t.Root, d.Features())
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting: %v\n", err)
				os.Exit(5)
			}
			w, err := createOutput(config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			err = writeLabels(w, labels)
			if err == nil {
				err = w.Close()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing predictions: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
		},
	}
	config.tree.addFlags(cmd)
	config.data.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the predicted labels will be written (defaults to STDOUT)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	err := pcc.tree.Validate()
	if err != nil {
		return err
	}
	return pcc.data.Validate()
}

// writeLabels writes every label on its own line.
func writeLabels(w io.Writer, labels []int) error {
	bw := bufio.NewWriter(w)
	for _, y := range labels {
		bw.WriteString(strconv.Itoa(y))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
