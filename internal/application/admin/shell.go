// Package admin describe el contenido del panel de administración: menú lateral,
// páginas y acciones, cada una con su requisito de permisos.
package admin

import (
	"github.com/yakumwamba/lpg-delivery-access/internal/application/access"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
	"github.com/yakumwamba/lpg-delivery-access/internal/application/session"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// BasePath raíz del panel; las rutas de Page.Path cuelgan de aquí.
const BasePath = "/admin"

// Identificadores de página.
const (
	PageDashboard = "dashboard"
	PageAnalytics = "analytics"
	PageUsers     = "users"
	PageProviders = "providers"
	PageCouriers  = "couriers"
	PageOrders    = "orders"
	PageSettings  = "settings"
	PageReports   = "reports"
)

type navEntry struct {
	item  dto.NavItem
	query access.Query
}

var navigation = []navEntry{
	{dto.NavItem{Label: "Dashboard", Href: "/admin", Icon: "📊"}, access.Query{}},
	{dto.NavItem{Label: "Analytics", Href: "/admin/analytics", Icon: "📈"}, access.AnyOf(entity.PermViewAnalytics)},
	{dto.NavItem{Label: "Users", Href: "/admin/users", Icon: "👥"}, access.AnyOf(entity.PermViewUsers)},
	{dto.NavItem{Label: "Providers", Href: "/admin/providers", Icon: "🏪"}, access.AnyOf(entity.PermViewProviders)},
	{dto.NavItem{Label: "Couriers", Href: "/admin/couriers", Icon: "🚚"}, access.AnyOf(entity.PermViewCouriers)},
	{dto.NavItem{Label: "Orders", Href: "/admin/orders", Icon: "📦"}, access.AnyOf(entity.PermViewOrders)},
	{dto.NavItem{Label: "Settings", Href: "/admin/settings", Icon: "⚙️"}, access.AnyOf(entity.PermManageSettings)},
	{dto.NavItem{Label: "Reports", Href: "/admin/reports", Icon: "📋"}, access.AnyOf(entity.PermViewReports)},
}

// Action botón de una página con su requisito.
type Action struct {
	Name  string
	Label string
	Query access.Query
}

// Section bloque de contenido de una página con su requisito.
type Section struct {
	Name  string
	Query access.Query
}

// Page definición estática de una página del panel.
type Page struct {
	ID       string
	Title    string
	Path     string
	View     access.Query
	Sections []Section
	Actions  []Action
}

var pages = []Page{
	{
		ID: PageDashboard, Title: "Dashboard", Path: "/admin",
		Sections: []Section{
			{"summary", access.Query{}},
			{"revenue_chart", access.AnyOf(entity.PermViewAnalytics)},
			{"recent_orders", access.AnyOf(entity.PermViewOrders)},
			{"user_growth", access.AnyOf(entity.PermViewAnalytics, entity.PermViewUsers)},
		},
	},
	{
		ID: PageAnalytics, Title: "Analytics", Path: "/admin/analytics", View: access.AnyOf(entity.PermViewAnalytics),
		Sections: []Section{{"revenue", access.Query{}}, {"orders", access.Query{}}, {"user_growth", access.Query{}}},
		Actions:  []Action{{"edit_targets", "Edit targets", access.AnyOf(entity.PermEditAnalytics)}, {"export", "Export", access.AnyOf(entity.PermExportData)}},
	},
	{
		ID: PageUsers, Title: "Users", Path: "/admin/users", View: access.AnyOf(entity.PermViewUsers),
		Sections: []Section{{"users_table", access.Query{}}},
		Actions: []Action{
			{"edit", "Edit", access.AnyOf(entity.PermEditUsers)},
			{"block", "Block", access.AnyOf(entity.PermEditUsers)},
			{"delete", "Delete", access.AnyOf(entity.PermDeleteUsers)},
			{"export", "Export", access.AllOf(entity.PermViewUsers, entity.PermExportData)},
		},
	},
	{
		ID: PageProviders, Title: "Providers", Path: "/admin/providers", View: access.AnyOf(entity.PermViewProviders),
		Sections: []Section{{"providers_table", access.Query{}}},
		Actions: []Action{
			{"verify", "Verify", access.AnyOf(entity.PermEditProviders)},
			{"suspend", "Suspend", access.AnyOf(entity.PermEditProviders)},
		},
	},
	{
		ID: PageCouriers, Title: "Couriers", Path: "/admin/couriers", View: access.AnyOf(entity.PermViewCouriers),
		Sections: []Section{{"couriers_table", access.Query{}}},
		Actions: []Action{
			{"update_status", "Update status", access.AnyOf(entity.PermEditCouriers)},
			{"suspend", "Suspend", access.AnyOf(entity.PermEditCouriers)},
		},
	},
	{
		ID: PageOrders, Title: "Orders", Path: "/admin/orders", View: access.AnyOf(entity.PermViewOrders),
		Sections: []Section{{"orders_table", access.Query{}}},
		Actions: []Action{
			{"update_status", "Update status", access.AnyOf(entity.PermEditOrders)},
			{"cancel", "Cancel", access.AnyOf(entity.PermEditOrders, entity.PermDeleteOrders)},
			{"delete", "Delete", access.AnyOf(entity.PermDeleteOrders)},
		},
	},
	{
		ID: PageSettings, Title: "Settings", Path: "/admin/settings", View: access.AnyOf(entity.PermManageSettings),
		Sections: []Section{{"transaction_fees", access.Query{}}, {"platform_settings", access.Query{}}},
		Actions:  []Action{{"save", "Save", access.AnyOf(entity.PermManageSettings)}},
	},
	{
		ID: PageReports, Title: "Reports", Path: "/admin/reports", View: access.AnyOf(entity.PermViewReports),
		Sections: []Section{{"reports_list", access.Query{}}},
		Actions:  []Action{{"export", "Export", access.AnyOf(entity.PermExportData)}},
	},
}

// Pages devuelve las páginas del panel en orden de menú.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// Lookup busca una página por identificador.
func Lookup(id string) (Page, bool) {
	for _, p := range pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Menu devuelve las entradas del menú que la sesión puede ver.
func Menu(s session.Snapshot) []dto.NavItem {
	visible := access.Filter(s, navigation, func(e navEntry) access.Query { return e.query })
	out := make([]dto.NavItem, 0, len(visible))
	for _, e := range visible {
		out = append(out, e.item)
	}
	return out
}

// Render construye el descriptor de la página con secciones y acciones ya filtradas.
// No vuelve a comprobar View: eso lo hace la ruta.
func Render(s session.Snapshot, p Page) dto.PageResponse {
	sections := access.Filter(s, p.Sections, func(sec Section) access.Query { return sec.Query })
	actions := access.Filter(s, p.Actions, func(a Action) access.Query { return a.Query })

	resp := dto.PageResponse{
		Page:      p.ID,
		Title:     p.Title,
		AdminRole: s.AdminRole(),
		Nav:       Menu(s),
		Sections:  make([]string, 0, len(sections)),
		Actions:   make([]dto.ActionResponse, 0, len(actions)),
	}
	for _, sec := range sections {
		resp.Sections = append(resp.Sections, sec.Name)
	}
	for _, a := range actions {
		resp.Actions = append(resp.Actions, dto.ActionResponse{Name: a.Name, Label: a.Label})
	}
	return resp
}
