package buildcache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/framesmith/fspack-go/authoring"
	"golang.org/x/crypto/blake2b"
)

// keyPayload is the canonicalized, pre-encode view of a character's
// resolved authoring data: after variant resolution and rule application,
// before encoding. Hashing this rather than the source files means cache
// hits survive formatting-only edits and don't depend on which on-disk
// files a variant was assembled from.
type keyPayload struct {
	Character authoring.Character
	Assets    authoring.CharacterAssets
	States    []authoring.State
	Cancel    authoring.CancelTable
}

// Key returns the hex-encoded blake2b-256 content hash of a character's
// resolved authoring data. States are sorted by Input first, matching the
// encoder's own canonicalization, so the hash is independent of input
// ordering; encoding/json's sorted map-key output makes the rest of the
// marshal deterministic.
func Key(character authoring.Character, assets authoring.CharacterAssets, states []authoring.State, cancel authoring.CancelTable) (string, error) {
	sorted := make([]authoring.State, len(states))
	copy(sorted, states)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Input < sorted[j].Input })

	canonical, err := json.Marshal(keyPayload{Character: character, Assets: assets, States: sorted, Cancel: cancel})
	if err != nil {
		return "", fmt.Errorf("buildcache: marshal content for hashing: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
