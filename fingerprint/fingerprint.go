// Package fingerprint computes deterministic 256-bit content hashes of
// scene subgraphs. Two subgraphs fingerprint equally exactly when they
// agree on node types, field values and child structure; node names and
// identities do not participate, so structurally identical graphs share a
// fingerprint. Fingerprints key the traversal-result caches.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/scene-xyz/go-scene/node"
)

// Fingerprint is a 256-bit subgraph content hash. It is comparable and
// usable as a map key.
type Fingerprint struct {
	val uint256.Int
}

// Hex returns the fingerprint as a 0x-prefixed hex string.
func (f Fingerprint) Hex() string {
	return f.val.Hex()
}

// Equal reports whether two fingerprints are identical.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.val.Eq(&other.val)
}

// Of computes the fingerprint of the subgraph rooted at n. Shared
// sub-DAGs are hashed once and memoized by node identity for the duration
// of the call.
func Of(n node.Node) Fingerprint {
	w := &walker{memo: map[uuid.UUID][sha256.Size]byte{}}
	digest := w.hash(n)
	var f Fingerprint
	f.val.SetBytes(digest[:])
	return f
}

type walker struct {
	memo map[uuid.UUID][sha256.Size]byte
}

func (w *walker) hash(n node.Node) [sha256.Size]byte {
	if digest, ok := w.memo[n.ID()]; ok {
		return digest
	}

	h := sha256.New()
	writeString(h, n.TypeId().Name())

	if fielded, ok := n.(node.Fielded); ok {
		fields := fielded.Fields()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeInt(h, len(keys))
		for _, k := range keys {
			writeString(h, k)
			writeString(h, fmt.Sprintf("%v", fields[k]))
		}
	} else {
		writeInt(h, 0)
	}

	if parent, ok := n.(node.Parent); ok {
		writeInt(h, parent.NumChildren())
		for i := 0; i < parent.NumChildren(); i++ {
			child := w.hash(parent.Child(i))
			h.Write(child[:])
		}
	} else {
		writeInt(h, -1)
	}

	var digest [sha256.Size]byte
	h.Sum(digest[:0])
	w.memo[n.ID()] = digest
	return digest
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	writeInt(h, len(s))
	h.Write([]byte(s))
}

func writeInt(h interface{ Write([]byte) (int, error) }, v int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(v)))
	h.Write(buf[:])
}
