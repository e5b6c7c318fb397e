package constraint

import (
	"github.com/dshills/kingdomgen/pkg/card"
	"github.com/dshills/kingdomgen/pkg/catalog"
	"github.com/dshills/kingdomgen/pkg/rngsrc"
)

func testCatalog(piles []*card.Pile) *catalog.Catalog {
	return catalog.New(piles, rngsrc.New(1))
}
