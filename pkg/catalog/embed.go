package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"
)

// DefaultName is the catalog used when callers do not pick one.
const DefaultName = "en"

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

var (
	embeddedOnce  sync.Once
	embeddedStore *Store
	embeddedErr   error
)

// EmbeddedFS returns the bundled catalog documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalogs")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Embedded returns the store built from EmbeddedFS. The result is cached.
func Embedded() (*Store, error) {
	embeddedOnce.Do(func() {
		embeddedStore, embeddedErr = LoadFS(EmbeddedFS())
	})
	return embeddedStore, embeddedErr
}

// Default returns the bundled English catalog.
func Default() Catalog {
	return MustEmbedded(DefaultName)
}

// MustEmbedded returns the named bundled catalog and panics when it is
// missing or invalid. Useful for init-time wiring and tests.
func MustEmbedded(name string) Catalog {
	store, err := Embedded()
	if err != nil {
		panic(err)
	}
	cat, ok := store.Get(name)
	if !ok {
		panic(fmt.Sprintf("catalog: embedded catalog %q not found", name))
	}
	return cat
}
