package resources

import (
	"time"

	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Set — все фасады поверх одного клиента.
type Set struct {
	Leads     *Leads
	Clients   *Clients
	Proposals *Proposals
	Contracts *Contracts
	Products  *Products
	Users     *Users
	Documents *Documents
}

// NewSet собирает фасады. now == nil означает time.Now; archive может быть nil.
func NewSet(c *partner.Client, archive DocumentArchive, now func() time.Time) *Set {
	if now == nil {
		now = time.Now
	}

	return &Set{
		Leads:     NewLeads(c, now),
		Clients:   NewClients(c, now),
		Proposals: NewProposals(c, now),
		Contracts: NewContracts(c, now),
		Products:  NewProducts(c),
		Users:     NewUsers(c),
		Documents: NewDocuments(c, archive),
	}
}
