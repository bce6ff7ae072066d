package service

import (
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

func productToAPI(p *models.Product) *api.Product {
	return &api.Product{ID: p.ID, Name: p.Name, Price: p.Price}
}

func menuGroupToAPI(g *models.MenuGroup) *api.MenuGroup {
	return &api.MenuGroup{ID: g.ID, Name: g.Name}
}

func menuToAPI(m *models.Menu) *api.Menu {
	lines := make([]*api.MenuProduct, len(m.MenuProducts))
	for i, mp := range m.MenuProducts {
		lines[i] = &api.MenuProduct{Seq: mp.Seq, MenuID: mp.MenuID, ProductID: mp.ProductID, Quantity: mp.Quantity}
	}
	return &api.Menu{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		MenuGroupID:  m.MenuGroupID,
		MenuProducts: lines,
	}
}

func menuProductsFromAPI(lines []*api.MenuProduct) []models.MenuProduct {
	out := make([]models.MenuProduct, 0, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		out = append(out, models.MenuProduct{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

func tableToAPI(t *models.OrderTable) *api.OrderTable {
	return &api.OrderTable{
		ID:             t.ID,
		TableGroupID:   t.TableGroupID,
		NumberOfGuests: t.NumberOfGuests,
		Empty:          t.Empty,
	}
}

func tablesToAPI(tables []*models.OrderTable) []*api.OrderTable {
	out := make([]*api.OrderTable, len(tables))
	for i, t := range tables {
		out[i] = tableToAPI(t)
	}
	return out
}

func tableGroupToAPI(g *models.TableGroup) *api.TableGroup {
	members := make([]*api.OrderTable, len(g.OrderTables))
	for i := range g.OrderTables {
		members[i] = tableToAPI(&g.OrderTables[i])
	}
	return &api.TableGroup{ID: g.ID, CreatedDate: g.CreatedDate, OrderTables: members}
}

func orderToAPI(o *models.Order) *api.Order {
	items := make([]*api.OrderLineItem, len(o.OrderLineItems))
	for i, item := range o.OrderLineItems {
		items[i] = &api.OrderLineItem{Seq: item.Seq, OrderID: item.OrderID, MenuID: item.MenuID, Quantity: item.Quantity}
	}
	return &api.Order{
		ID:             o.ID,
		OrderTableID:   o.OrderTableID,
		OrderStatus:    string(o.OrderStatus),
		OrderedTime:    o.OrderedTime,
		OrderLineItems: items,
	}
}

func orderLineItemsFromAPI(items []*api.OrderLineItem) []models.OrderLineItem {
	out := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, models.OrderLineItem{MenuID: item.MenuID, Quantity: item.Quantity})
	}
	return out
}

func staffToAPI(s *models.Staff) *api.Staff {
	return &api.Staff{ID: s.ID, Email: s.Email, DisplayName: s.DisplayName}
}
