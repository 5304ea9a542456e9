package aggregators

import "weblog-analyzer/internal/models"

// bucketOf spreads keys over the hash buckets with Paul Hsieh's SuperFastHash. The trailing single
// bytes are mixed in as signed values, which keeps bucket placement stable across persisted runs.
func bucketOf(key string) uint32 {
	n := len(key)
	if n == 0 {
		return 0
	}
	get16 := func(i int) uint32 {
		return uint32(key[i]) | uint32(key[i+1])<<8
	}

	hash := uint32(n)
	rem := n & 3
	i := 0
	for blocks := n >> 2; blocks > 0; blocks-- {
		hash += get16(i)
		tmp := (get16(i+2) << 11) ^ hash
		hash = (hash << 16) ^ tmp
		i += 4
		hash += hash >> 11
	}

	switch rem {
	case 3:
		hash += get16(i)
		hash ^= hash << 16
		hash ^= uint32(int32(int8(key[i+2])) << 18)
		hash += hash >> 11
	case 2:
		hash += get16(i)
		hash ^= hash << 11
		hash += hash >> 17
	case 1:
		hash += uint32(int32(int8(key[i])))
		hash ^= hash << 10
		hash += hash >> 1
	}

	hash ^= hash << 3
	hash += hash >> 5
	hash ^= hash << 4
	hash += hash >> 17
	hash ^= hash << 25
	hash += hash >> 6

	return hash % models.MaxHashBucket
}
