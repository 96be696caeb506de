package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(deps.Catalog),
		mediaHandler:    newMediaHandler(deps.Catalog),
		settingsHandler: newSettingsHandler(deps.Settings),
		contactHandler:  newContactHandler(deps.Contact),
		authHandler:     newAuthHandler(deps.Credentials, deps.Tokens),
	}
}
