package author

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dshills/codereport/internal/cache"
)

// Repository is the version-control capability needed to attribute lines.
// *gitctx.Repo satisfies it.
type Repository interface {
	// BlobHash returns the content id of path at the current tip.
	BlobHash(path string) (string, bool)
	// BlameLine returns the identity responsible for the first line of the
	// window [start, max(end, start)].
	BlameLine(path string, start, end uint32) (string, error)
}

// resolveIdentity returns the identity for path's line window and whether
// store gained an entry that should be persisted.
func resolveIdentity(repo Repository, store *cache.Store, root, path string, start, end uint32, log *zap.SugaredLogger) (identity string, ok bool, changed bool) {
	oid, hasOID := repo.BlobHash(path)

	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(path))); err != nil {
		return "", false, false
	}

	key := cache.Key{Path: path, Start: start, End: end, OID: oid}
	if hasOID {
		if cached, hit := store.Lookup(key); hit {
			log.Debugw("blame cache hit", "path", path, "start", start, "end", end, "oid", oid)
			if cached == "" {
				return "", false, false
			}
			return cached, true, false
		}
	}

	window := end
	if window < start {
		window = start
	}
	line := start
	if line < 1 {
		line = 1
	}
	identity, err := repo.BlameLine(path, line, window)
	if err != nil {
		log.Debugw("blame failed", "path", path, "line", line, "error", err)
		return "", false, false
	}
	if identity == "" {
		return "", false, false
	}

	if !hasOID {
		log.Debugw("not caching blame for file outside HEAD", "path", path)
		return identity, true, false
	}
	store.Upsert(key, identity)
	return identity, true, true
}
