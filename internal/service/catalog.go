package service

import (
	"errors"
	"math/rand/v2"

	"giftcases-rest-api/internal/model"
)

// ErrCaseNotFound means the case id is absent from the catalog.
var ErrCaseNotFound = errors.New("case not found")

// DefaultCatalog returns the fixed case catalog.
func DefaultCatalog() map[string]model.Case {
	return map[string]model.Case{
		"daily": {
			Name:  "Daily Case",
			Price: 0,
			Items: []model.ItemTemplate{
				{CatalogID: 1, Name: "Mighty Arm", Emoji: "💪", Value: 10},
				{CatalogID: 2, Name: "Desk Calendar", Emoji: "📅", Value: 15},
				{CatalogID: 3, Name: "Flying Broom", Emoji: "🧹", Value: 20},
			},
		},
		"bomj": {
			Name:  "Starter Case",
			Price: 0,
			Items: []model.ItemTemplate{
				{CatalogID: 4, Name: "Heart", Emoji: "❤️", Value: 5},
				{CatalogID: 5, Name: "Teddy Bear", Emoji: "🧸", Value: 8},
				{CatalogID: 6, Name: "Rose", Emoji: "🌹", Value: 12},
				{CatalogID: 7, Name: "Rocket", Emoji: "🚀", Value: 18},
				{CatalogID: 8, Name: "Flowers", Emoji: "💐", Value: 15},
				{CatalogID: 9, Name: "Diamond", Emoji: "💎", Value: 25},
			},
		},
		"durov": {
			Name:  "Durov Case",
			Price: 100,
			Items: []model.ItemTemplate{
				{CatalogID: 10, Name: "Plush Pepe (gold)", Emoji: "🐸", Value: 50},
				{CatalogID: 11, Name: "Vintage Sigar", Emoji: "💨", Value: 40},
				{CatalogID: 12, Name: "Top Hat", Emoji: "🎩", Value: 35},
				{CatalogID: 13, Name: "Perfume Bottle", Emoji: "💄", Value: 45},
			},
		},
		"bayrex": {
			Name:  "BayRex Case",
			Price: 150,
			Items: []model.ItemTemplate{
				{CatalogID: 14, Name: "Plush Pepe (gold)", Emoji: "🐸", Value: 50},
				{CatalogID: 15, Name: "Vintage Sigar", Emoji: "💨", Value: 40},
				{CatalogID: 16, Name: "Top Hat", Emoji: "🎩", Value: 35},
				{CatalogID: 17, Name: "Perfume Bottle", Emoji: "💄", Value: 45},
			},
		},
	}
}

// Resolver draws rewards from the case catalog. Draws are uniform over
// the case's item pool; no weighting, no pity system.
type Resolver struct {
	catalog map[string]model.Case
	ledger  *Ledger

	// randIndex picks a template index; swapped out in tests.
	randIndex func(n int) int
}

// NewResolver creates a reward resolver over the given catalog.
func NewResolver(catalog map[string]model.Case, ledger *Ledger) *Resolver {
	return &Resolver{
		catalog:   catalog,
		ledger:    ledger,
		randIndex: rand.IntN,
	}
}

// Catalog returns the full case catalog.
func (r *Resolver) Catalog() map[string]model.Case {
	return r.catalog
}

// OpenCase debits the case price (free cases skip the debit), draws one
// template uniformly at random, grants it under a fresh id and increments
// casesOpened. The user record is mutated in memory only.
func (r *Resolver) OpenCase(user *model.User, caseID string) (model.Item, error) {
	c, ok := r.catalog[caseID]
	if !ok {
		return model.Item{}, ErrCaseNotFound
	}

	if c.Price > 0 {
		if err := r.ledger.Debit(user, c.Price); err != nil {
			return model.Item{}, err
		}
	}

	tpl := c.Items[r.randIndex(len(c.Items))]
	item := r.ledger.Grant(user, tpl)
	user.CasesOpened++

	return item, nil
}
