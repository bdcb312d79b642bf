package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	data            *datasetConfig
	output          string
	redisAddr       string
	redisPrefix     string
	workers         int
	minParallelSize int
	profilePath     string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig, data: &datasetConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a binary classification tree from a dataset of examples with continuous features and integer labels.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.profilePath != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(config.profilePath), profile.Quiet).Stop()
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
			config.Logf("Growing tree from a dataset with %d samples and %d features to predict %s with %d workers...", d.Len(), d.Dims(), md.Label.Name(), config.workers)
			b := sapling.NewBuilder(sapling.Workers(config.workers), sapling.MinParallelSize(config.minParallelSize))
			root, err := b.Build(ctx, d)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(4)
			}
			t := tree.New(root, md.FeatureNames(), md.Label.Name())
			config.Logf("Done: tree with depth %d, %d nodes and %d leaves", tree.Depth(root), tree.Size(root), tree.Leaves(root))
			config.Logf("%v", t)
			err = outputTree(ctx, config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			if config.redisAddr != "" {
				config.Logf("Saving tree on redis at %s with prefix %s...", config.redisAddr, config.redisPrefix)
				rc := newRedisClient(config.redisAddr)
				err = redisstore.Save(ctx, rc, config.redisPrefix, t)
				rc.Close()
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
			}
		},
	}
	config.data.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server on which to also save the tree")
	cmd.PersistentFlags().StringVar(&(config.redisPrefix), "redis-prefix", defaultRedisPrefix, "prefix of the redis keys to save the tree under")
	cmd.PersistentFlags().IntVarP(&(config.workers), "workers", "w", 1, "number of goroutines used to grow the tree")
	cmd.PersistentFlags().IntVar(&(config.minParallelSize), "min-parallel-size", 64, "minimum number of samples a node must have to grow its subtrees concurrently")
	cmd.PersistentFlags().StringVar(&(config.profilePath), "profile", "", "directory on which to write a CPU profile of the growth")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	err := gcc.data.Validate()
	if err != nil {
		return err
	}
	if gcc.workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", gcc.workers)
	}
	if gcc.minParallelSize < 0 {
		return fmt.Errorf("min-parallel-size must not be negative, got %d", gcc.minParallelSize)
	}
	if gcc.redisAddr != "" && gcc.redisPrefix == "" {
		return fmt.Errorf("redis-prefix flag cannot be empty")
	}
	return nil
}

// commandContext returns a context cancelled when the process is interrupted.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
