package api

import (
	"net/http"

	"github.com/okian/aiready/internal/domain/catalog"
)

type categoryView struct {
	catalog.CategoryDefinition
	Skills []catalog.SkillDefinition `json:"skills"`
}

type levelView struct {
	Name  string `json:"name"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
}

type catalogResponse struct {
	TotalSkills int            `json:"totalSkills"`
	Categories  []categoryView `json:"categories"`
	Levels      []levelView    `json:"levels"`
}

// HandleCatalog handles GET /catalog: categories with their skills and the
// level bands.
func (s *Server) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := catalogResponse{TotalSkills: s.catalog.TotalSkillCount()}
	for _, cat := range s.catalog.Categories() {
		resp.Categories = append(resp.Categories, categoryView{
			CategoryDefinition: cat,
			Skills:             s.catalog.SkillsByCategory(cat.ID),
		})
	}
	for _, b := range s.bands {
		resp.Levels = append(resp.Levels, levelView{
			Name:  string(b.Level),
			Min:   b.Min,
			Max:   b.Max,
			Color: b.Level.Color(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
