// Package policy is the single authorization capability of the procurement
// domain. Every usecase asks it whether an actor may perform an operation or
// move an entity between two states, instead of comparing roles inline.
package policy

import (
	"procurement-service/domain/model"
)

// Operation names an action that is gated by role
type Operation string

const (
	OpManageIngredients  Operation = "ingredient:manage"
	OpManageCatalog      Operation = "catalog:manage"
	OpUpdateCatalogEntry Operation = "catalog:update_entry"
	OpCreateInquiry      Operation = "inquiry:create"
	OpSubmitQuote        Operation = "quote:submit"
	OpDeleteQuote        Operation = "quote:delete"
	OpCancelQuote        Operation = "quote:cancel"
	OpAcceptQuote        Operation = "quote:accept"
	OpViewAll            Operation = "procurement:view_all"
	OpManageProfile      Operation = "profile:manage"
	OpRepairProfiles     Operation = "profile:repair"
	OpExportOrder        Operation = "order:export"
)

// Entity names a stateful entity
type Entity string

const (
	EntityInquiry Entity = "inquiry"
	EntityQuote   Entity = "quote"
	EntityOrder   Entity = "order"
)

// Resource is the entity being acted on together with the supplier account
// that owns it
type Resource struct {
	Entity  Entity
	OwnerID uint
}

// Authorizer answers every access question of the domain
type Authorizer interface {
	// CanPerform reports whether the actor's role grants op
	CanPerform(actor model.Actor, op Operation) bool
	// CanAccess reports whether the actor may read or act on a resource
	// owned by the supplier account ownerID
	CanAccess(actor model.Actor, ownerID uint) bool
	// CanTransition reports whether the actor may move res from one status
	// to another. Re-applying the current status is allowed to anyone who may
	// access the resource and is expected to be a no-op.
	CanTransition(actor model.Actor, res Resource, from, to string) bool
}

// grant says which roles may use a rule; ownerOnly restricts suppliers to
// resources they own, admins are never owner-restricted
type grant struct {
	roles     []model.Role
	ownerOnly bool
}

func (g grant) allows(actor model.Actor, ownerID uint) bool {
	for _, role := range g.roles {
		if role != actor.Role {
			continue
		}
		if g.ownerOnly && actor.Role != model.RoleAdmin {
			return actor.ID == ownerID
		}
		return true
	}
	return false
}

type edge struct {
	from, to string
}

// Gate is the default Authorizer
type Gate struct {
	operations  map[Operation][]model.Role
	transitions map[Entity]map[edge]grant
}

var (
	adminOnly        = grant{roles: []model.Role{model.RoleAdmin}}
	adminOrOwner     = grant{roles: []model.Role{model.RoleAdmin, model.RoleSupplier}, ownerOnly: true}
	adminAndSupply   = []model.Role{model.RoleAdmin, model.RoleSupplier}
	onlyAdmin        = []model.Role{model.RoleAdmin}
	onlySupplier     = []model.Role{model.RoleSupplier}
	terminalStatuses = map[Entity]map[string]bool{
		EntityInquiry: {string(model.InquiryCancelled): true},
		EntityQuote:   {string(model.QuoteCancelled): true, string(model.QuoteOrderPlaced): true},
		EntityOrder:   {string(model.OrderCancelled): true, string(model.OrderReceived): true},
	}
)

// New builds the gate with the procurement authorization matrix
func New() *Gate {
	return &Gate{
		operations: map[Operation][]model.Role{
			OpManageIngredients:  onlyAdmin,
			OpManageCatalog:      onlyAdmin,
			OpUpdateCatalogEntry: adminAndSupply,
			OpCreateInquiry:      onlyAdmin,
			OpSubmitQuote:        onlySupplier,
			OpDeleteQuote:        onlyAdmin,
			OpCancelQuote:        onlyAdmin,
			OpAcceptQuote:        onlyAdmin,
			OpViewAll:            onlyAdmin,
			OpManageProfile:      adminAndSupply,
			OpRepairProfiles:     onlyAdmin,
			OpExportOrder:        adminAndSupply,
		},
		transitions: map[Entity]map[edge]grant{
			EntityInquiry: {
				{string(model.InquiryOpen), string(model.InquiryResponded)}:      adminOrOwner,
				{string(model.InquiryOpen), string(model.InquiryCancelled)}:      adminOnly,
				{string(model.InquiryResponded), string(model.InquiryCancelled)}: adminOnly,
			},
			EntityQuote: {
				{string(model.QuoteQuoted), string(model.QuoteOrderPlaced)}: adminOnly,
				{string(model.QuoteQuoted), string(model.QuoteCancelled)}:   adminOnly,
			},
			EntityOrder: {
				{string(model.OrderPlaced), string(model.OrderShipped)}:    adminOrOwner,
				{string(model.OrderShipped), string(model.OrderReceived)}:  adminOrOwner,
				{string(model.OrderPlaced), string(model.OrderCancelled)}:  adminOnly,
				{string(model.OrderShipped), string(model.OrderCancelled)}: adminOnly,
			},
		},
	}
}

// CanPerform implements Authorizer
func (g *Gate) CanPerform(actor model.Actor, op Operation) bool {
	for _, role := range g.operations[op] {
		if role == actor.Role {
			return true
		}
	}
	return false
}

// CanAccess implements Authorizer
func (g *Gate) CanAccess(actor model.Actor, ownerID uint) bool {
	return adminOrOwner.allows(actor, ownerID)
}

// CanTransition implements Authorizer
func (g *Gate) CanTransition(actor model.Actor, res Resource, from, to string) bool {
	edges, ok := g.transitions[res.Entity]
	if !ok {
		return false
	}
	if from == to {
		return g.CanAccess(actor, res.OwnerID)
	}
	if terminalStatuses[res.Entity][from] {
		return false
	}
	rule, ok := edges[edge{from: from, to: to}]
	if !ok {
		return false
	}
	return rule.allows(actor, res.OwnerID)
}

// IsKnownStatus reports whether status belongs to entity's state machine
func IsKnownStatus(entity Entity, status string) bool {
	switch entity {
	case EntityInquiry:
		switch model.InquiryStatus(status) {
		case model.InquiryOpen, model.InquiryResponded, model.InquiryCancelled:
			return true
		}
	case EntityQuote:
		switch model.QuoteStatus(status) {
		case model.QuoteQuoted, model.QuoteOrderPlaced, model.QuoteCancelled:
			return true
		}
	case EntityOrder:
		switch model.OrderStatus(status) {
		case model.OrderPlaced, model.OrderShipped, model.OrderReceived, model.OrderCancelled:
			return true
		}
	}
	return false
}
