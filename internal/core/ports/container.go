package ports

// ServiceContainer bundles the service facades the HTTP layer needs.
type ServiceContainer struct {
	Conversion ConversionSvcFacade
	History    RateHistorySvcFacade
	TWRR       TWRRSvcFacade
	Chart      ChartSvcFacade
	Currency   CurrencySvcFacade
	Ingestion  IngestionSvcFacade
}
