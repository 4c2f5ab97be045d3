package routegroups

import (
	"github.com/go-chi/chi/v5"

	"citracker/api/handlers"
)

func RegisterDashboard(apiRouter chi.Router, dashboard *handlers.DashboardHandler) {
	apiRouter.Route("/dashboard", func(dashboardRouter chi.Router) {
		dashboardRouter.MethodFunc("GET", "/overview/sectors", dashboard.OverviewSectors)
		dashboardRouter.MethodFunc("GET", "/overview/timeline", dashboard.OverviewTimeline)
		dashboardRouter.MethodFunc("GET", "/overview/subtypes", dashboard.OverviewSubtypes)

		dashboardRouter.MethodFunc("GET", "/types/sectors", dashboard.TypesBySector)
		dashboardRouter.MethodFunc("GET", "/types/impact", dashboard.TypesImpact)
		dashboardRouter.MethodFunc("GET", "/types/intelligence", dashboard.TypesIntelligence)
		dashboardRouter.MethodFunc("GET", "/types/functional", dashboard.TypesFunctional)
		dashboardRouter.MethodFunc("GET", "/types/techniques", dashboard.TypesTechniques)

		dashboardRouter.MethodFunc("GET", "/initiators/origins", dashboard.InitiatorOrigins)
		dashboardRouter.MethodFunc("GET", "/initiators/actors", dashboard.TopActors)
		dashboardRouter.MethodFunc("GET", "/initiators/conflicts", dashboard.Conflicts)
		dashboardRouter.MethodFunc("GET", "/initiators/conflict-sectors", dashboard.ConflictSectors)
		dashboardRouter.MethodFunc("GET", "/initiators/conflict-initiators", dashboard.ConflictInitiators)

		dashboardRouter.MethodFunc("GET", "/totals", dashboard.Totals)
		dashboardRouter.MethodFunc("GET", "/titles", dashboard.Titles)
		dashboardRouter.MethodFunc("GET", "/controls", dashboard.Controls)

		dashboardRouter.MethodFunc("POST", "/events/click", dashboard.ClickEvent)
		dashboardRouter.MethodFunc("POST", "/sections/{section}/reset", dashboard.ResetSection)
	})
}
