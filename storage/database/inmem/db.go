package inmemdb

import (
	"sync"
	"time"

	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
)

var nowFunc = time.Now // mockable

type (
	DB struct {
		catalog *catalogTable
		lead    *leadTable
	}

	catalogTable struct {
		sync.RWMutex
		snapshot catalog.Catalog
	}

	leadTable struct {
		sync.RWMutex
		rows []lead.Lead
	}
)

// Open returns an empty in-memory database.
func Open() *DB {
	return &DB{
		catalog: new(catalogTable),
		lead:    new(leadTable),
	}
}
