package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Fee   FeeSvcFacade
	Rates RatesSvcFacade
}
