package sim

import (
	"fmt"
	"strings"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"

	"github.com/google/uuid"
)

const designAttempts = 6

// DesignRegistry hands out jersey design names that are unique per customer
// and across the run.
type DesignRegistry struct {
	src        *random.Source
	global     map[string]bool
	byCustomer map[uuid.UUID]map[string]bool
}

func NewDesignRegistry(src *random.Source) *DesignRegistry {
	return &DesignRegistry{
		src:        src,
		global:     map[string]bool{},
		byCustomer: map[uuid.UUID]map[string]bool{},
	}
}

func (r *DesignRegistry) taken(mine map[string]bool, name string) bool {
	return mine[name] || r.global[name]
}

// Next reserves a design name for a customer's team in year.
func (r *DesignRegistry) Next(customer uuid.UUID, team string, year int) string {
	mine, ok := r.byCustomer[customer]
	if !ok {
		mine = map[string]bool{}
		r.byCustomer[customer] = mine
	}
	base := strings.TrimSpace(fmt.Sprintf("%s %d", strings.TrimSpace(team), year))

	var name string
	for attempt := 0; attempt < designAttempts; attempt++ {
		name = base + " " + r.src.Token(4+attempt%2)
		if !r.taken(mine, name) {
			break
		}
	}
	for r.taken(mine, name) {
		name += "-" + r.src.Token(2)
	}
	mine[name] = true
	r.global[name] = true
	return name
}

// Assign names every jersey item of o and renames the item after its design.
func (r *DesignRegistry) Assign(o *core.Order) {
	for i := range o.Items {
		it := &o.Items[i]
		if !it.IsJersey() {
			continue
		}
		team := it.TeamName
		if team == "" {
			team = "Custom"
		}
		it.DesignName = r.Next(o.UserID, team, o.OrderedAt.Year())
		sport := it.Sport
		if sport == "" {
			sport = "Team"
		}
		it.Name = fmt.Sprintf("Custom %s Jersey - %s", sport, it.DesignName)
	}
}

// Len is the number of design names handed out.
func (r *DesignRegistry) Len() int { return len(r.global) }
