/*
Package redisstore provides a tree.NodeStore backed by a Redis database, and
helpers to save whole trees on it.
*/
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	featurejson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/tree"
	treejson "github.com/pbanos/sapling/tree/json"
	"gopkg.in/redis.v5"
)

const headerKey = "tree"

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec treejson.NodeEncodeDecoder
}

//New builds a tree.NodeStore backed by a redis DB that keeps
//records under prefix:id keys, encoded with the given NodeEncodeDecoder
func New(rc *redis.Client, prefix string, nencdec treejson.NodeEncodeDecoder) tree.NodeStore {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) Create(ctx context.Context, r *tree.Record) error {
	var ok bool
	for !ok {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.ID = randString(20)
		data, err := rs.nencdec.Encode(r)
		if err != nil {
			return fmt.Errorf("creating node: encoding node: %v", err)
		}
		ok, err = rs.rc.SetNX(rs.keyFor(r.ID), data, 0).Result()
		if err != nil {
			return fmt.Errorf("creating node in redis: %v", err)
		}
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Record, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: %v", id, err)
	}
	r, err := rs.nencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: decoding %q: %v", id, data, err)
	}
	return r, nil
}

func (rs *redisStore) Store(ctx context.Context, r *tree.Record) error {
	redisID := rs.keyFor(r.ID)
	data, err := rs.nencdec.Encode(r)
	if err != nil {
		return fmt.Errorf("storing node %q: encoding node: %v", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing node %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, r *tree.Record) error {
	redisID := rs.keyFor(r.ID)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting node %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(id string) string {
	return keyFor(rs.prefix, id)
}

func keyFor(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

/*
Save takes a context, a redis client, a key prefix and a tree and stores
every node of the tree under prefix:id keys and the tree's header, with the
root node ID, under the prefix:tree key, replacing any tree previously saved
with the same prefix. It returns an error if the tree cannot be stored.
*/
func Save(ctx context.Context, rc *redis.Client, prefix string, t *tree.Tree) error {
	ns := New(rc, prefix, treejson.NewFeatureNodeEncodeDecoder(t.Features))
	rootID, err := tree.Flatten(ctx, t.Root, ns)
	if err != nil {
		return fmt.Errorf("saving tree nodes: %v", err)
	}
	header, err := featurejson.Marshal(&treejson.Header{RootID: rootID, Label: t.Label, Features: t.Features})
	if err != nil {
		return fmt.Errorf("encoding tree header: %v", err)
	}
	_, err = rc.Set(keyFor(prefix, headerKey), header, 0).Result()
	if err != nil {
		return fmt.Errorf("saving tree header: %v", err)
	}
	return nil
}

/*
Load takes a context, a redis client and a key prefix and returns the tree
saved with Save under that prefix, or an error if it cannot be retrieved.
*/
func Load(ctx context.Context, rc *redis.Client, prefix string) (*tree.Tree, error) {
	data, err := rc.Get(keyFor(prefix, headerKey)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no tree saved with prefix %q", prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree header: %v", err)
	}
	h := &treejson.Header{}
	err = json.Unmarshal([]byte(data), h)
	if err != nil {
		return nil, fmt.Errorf("decoding tree header: %v", err)
	}
	ns := New(rc, prefix, treejson.NewFeatureNodeEncodeDecoder(h.Features))
	root, err := tree.Assemble(ctx, ns, h.RootID)
	if err != nil {
		return nil, err
	}
	return tree.New(root, h.Features, h.Label), nil
}
