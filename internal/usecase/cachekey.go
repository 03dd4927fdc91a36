package usecase

import (
	"strconv"
	"strings"

	"github.com/tallyworks/wipengine/internal/domain"
)

// keyNamespace prefixes every cache key the engine owns.
const keyNamespace = "wip"

// entityPrefix is the key prefix shared by every cached dimension of one
// entity. Invalidation deletes by this prefix; cacheKey builds on top of it.
// Keeping both paths on the same constructor is a correctness requirement:
// a key the read path writes that the invalidation path cannot reach is a
// stale-data bug, not an optimisation issue.
func entityPrefix(kind domain.EntityKind, id string) string {
	return keyNamespace + ":" + string(kind) + ":" + id + ":"
}

// cacheKey builds the full key for one cached entry. The entity version sits
// between the prefix and the dimension: bumping it strands every previously
// written key, including write-backs from computations that started before
// the bump.
func cacheKey(kind domain.EntityKind, id string, version int64, dim domain.Dimension, extra ...string) string {
	var b strings.Builder
	b.WriteString(entityPrefix(kind, id))
	b.WriteString("v")
	b.WriteString(strconv.FormatInt(version, 10))
	b.WriteString(":")
	b.WriteString(string(dim))
	for _, e := range extra {
		b.WriteString(":")
		b.WriteString(e)
	}
	return b.String()
}
