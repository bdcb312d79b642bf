package redisstore

import (
	"math/rand"
	"sync"
	"time"
)

var rnd = rand.New(&lockedSource{src: rand.NewSource(time.Now().UnixNano())})

// lockedSource is a rand.Source safe for concurrent use, node IDs
// are created from concurrent Create calls.
type lockedSource struct {
	lock sync.Mutex
	src  rand.Source
}

func (r *lockedSource) Int63() int64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.src.Int63()
}

func (r *lockedSource) Seed(seed int64) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.src.Seed(seed)
}

func randString(n int) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	str := make([]byte, n)
	for i := range str {
		str[i] = chars[rnd.Intn(len(chars))]
	}
	return string(str)
}
