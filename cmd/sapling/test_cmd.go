package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	data *datasetConfig
	tree *treeConfig
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{
		rootCmdConfig: rootConfig,
		data:          &datasetConfig{rootCmdConfig: rootConfig},
		tree:          &treeConfig{rootCmdConfig: rootConfig},
	}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labelled dataset, printing the fraction of examples it predicts correctly.`,
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
			config.Logf("Testing tree against %d samples...", d.Len())
			accuracy, err := t.Test(d)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing the tree: %v\n", err)
				os.Exit(5)
			}
			fmt.Printf("%d samples, accuracy: %.4f\n", d.Len(), accuracy)
		},
	}
	config.tree.addFlags(cmd)
	config.data.addFlags(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	err := tcc.tree.Validate()
	if err != nil {
		return err
	}
	return tcc.data.Validate()
}
