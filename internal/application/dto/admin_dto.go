package dto

// NavItem entrada del menú lateral del panel.
type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

// ActionResponse acción visible en una página (botón).
type ActionResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// PageResponse descriptor de una página del panel: secciones y acciones ya filtradas.
type PageResponse struct {
	Page      string           `json:"page"`
	Title     string           `json:"title"`
	AdminRole string           `json:"admin_role"`
	Nav       []NavItem        `json:"nav"`
	Sections  []string         `json:"sections"`
	Actions   []ActionResponse `json:"actions"`
}
