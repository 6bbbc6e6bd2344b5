package hypothesisgraphql

import (
	"sync"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
)

// Cache memoizes parsed schemas by their exact SDL source text. Entries live
// for the cache's lifetime; a test process builds a small, bounded number of
// distinct schemas, so there is no eviction. The zero value is not usable;
// construct with NewCache.
type Cache struct {
	mu      sync.Mutex
	schemas map[string]*language.Schema
}

func NewCache() *Cache {
	return &Cache{schemas: make(map[string]*language.Schema)}
}

// processCache backs SDL sources when no explicit cache is given.
var processCache = NewCache()

// Load returns the schema for the given SDL source, parsing it at most once
// per cache. Hits return the same schema instance, so generators built from
// equal sources share the type graph. Parse failures are not cached.
func (c *Cache) Load(source string) (*language.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if schema, ok := c.schemas[source]; ok {
		return schema, nil
	}
	schema, err := language.LoadSchema(source)
	if err != nil {
		return nil, err
	}
	c.schemas[source] = schema
	return schema, nil
}
