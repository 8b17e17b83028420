package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	ProfileHandler     *ProfileHandler
	PlanHandler        *PlanHandler
	ApplicationHandler *ApplicationHandler
	AdviceHandler      *AdviceHandler
	ContactHandler     *ContactHandler
	AdminHandler       *AdminHandler
}
