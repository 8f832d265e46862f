package service

import (
	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
)

// Catalog is an in-memory snapshot of the reference data a posting run
// needs: the chart of accounts plus products and taxes. Loaded once per
// operation inside its transaction so every lookup sees the same state.
type Catalog struct {
	accounts     []*model.Account
	accountsByID map[uuid.UUID]*model.Account
	productsByID map[uuid.UUID]*model.Product
	taxesByID    map[uuid.UUID]*model.Tax
}

func NewCatalog(accounts []*model.Account, products []*model.Product, taxes []*model.Tax) *Catalog {
	c := &Catalog{
		accounts:     accounts,
		accountsByID: make(map[uuid.UUID]*model.Account, len(accounts)),
		productsByID: make(map[uuid.UUID]*model.Product, len(products)),
		taxesByID:    make(map[uuid.UUID]*model.Tax, len(taxes)),
	}
	for _, a := range accounts {
		c.accountsByID[a.ID()] = a
	}
	for _, p := range products {
		c.productsByID[p.ID()] = p
	}
	for _, t := range taxes {
		c.taxesByID[t.ID()] = t
	}
	return c
}

// Account returns the account with the given ID, or nil.
func (c *Catalog) Account(id uuid.UUID) *model.Account {
	return c.accountsByID[id]
}

// Product returns the product with the given ID, or nil.
func (c *Catalog) Product(id uuid.UUID) *model.Product {
	return c.productsByID[id]
}

// Tax returns the tax with the given ID, or nil.
func (c *Catalog) Tax(id uuid.UUID) *model.Tax {
	return c.taxesByID[id]
}

// Accounts returns the snapshot's accounts in chart order.
func (c *Catalog) Accounts() []*model.Account {
	return c.accounts
}

// FirstPostableUnder scans the chart for the first active leaf account
// of the given type whose code sits under one of the prefixes, in
// prefix priority order.
func (c *Catalog) FirstPostableUnder(prefixes []string, accountType valueobject.AccountType) *model.Account {
	for _, prefix := range prefixes {
		for _, a := range c.accounts {
			if a.IsPostable() && a.AccountType() == accountType && a.Code().MatchesPrefix(prefix) {
				return a
			}
		}
	}
	return nil
}
