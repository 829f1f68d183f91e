package libdep

import "github.com/jward/libdep/internal/store"

// Public aliases for the scan cache types exposed by Engine.Cache.

type Cache = store.Store
type CachedFile = store.File
