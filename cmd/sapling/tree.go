package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree"
	treejson "github.com/pbanos/sapling/tree/json"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/spf13/cobra"
	redis "gopkg.in/redis.v5"
)

const defaultRedisPrefix = "sapling"

/*
treeConfig holds the flags of the commands that read a grown tree, either from
a JSON file or from a redis server.
*/
type treeConfig struct {
	*rootCmdConfig
	treeInput   string
	redisAddr   string
	redisPrefix string
}

func (tc *treeConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tc.treeInput), "tree", "t", "", "path to a file with the tree in JSON format (required unless --redis is set)")
	cmd.PersistentFlags().StringVar(&(tc.redisAddr), "redis", "", "address of a redis server to load the tree from")
	cmd.PersistentFlags().StringVar(&(tc.redisPrefix), "redis-prefix", defaultRedisPrefix, "prefix of the redis keys the tree is saved under")
}

func (tc *treeConfig) Validate() error {
	if tc.treeInput == "" && tc.redisAddr == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tc.treeInput != "" && tc.redisAddr != "" {
		return fmt.Errorf("tree and redis flags cannot be set at the same time")
	}
	if tc.redisAddr != "" && tc.redisPrefix == "" {
		return fmt.Errorf("redis-prefix flag cannot be empty")
	}
	return nil
}

func (tc *treeConfig) loadTree(ctx context.Context) (*tree.Tree, error) {
	if tc.redisAddr != "" {
		tc.Logf("Loading tree from redis at %s with prefix %s...", tc.redisAddr, tc.redisPrefix)
		rc := newRedisClient(tc.redisAddr)
		defer rc.Close()
		return redisstore.Load(ctx, rc, tc.redisPrefix)
	}
	tc.Logf("Loading tree from %s...", tc.treeInput)
	return loadTree(ctx, tc.treeInput)
}

func loadTree(ctx context.Context, path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tree file: %v", err)
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading tree from %s: %v", path, err)
	}
	return t, nil
}

func outputTree(ctx context.Context, path string, t *tree.Tree) error {
	w, err := createOutput(path)
	if err != nil {
		return err
	}
	err = treejson.WriteJSONTree(ctx, w, t)
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func newRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
