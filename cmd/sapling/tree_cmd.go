package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	tree *treeConfig
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig, tree: &treeConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a tree",
		Long:  `Print the splits and leaves of a tree, followed by its depth, size and number of leaves.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.tree.Validate()
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
			fmt.Printf("tree predicting %s\n", t.Label)
			fmt.Print(t)
			fmt.Printf("depth: %d, nodes: %d, leaves: %d\n", tree.Depth(t.Root), tree.Size(t.Root), tree.Leaves(t.Root))
		},
	}
	config.tree.addFlags(cmd)
	return cmd
}
