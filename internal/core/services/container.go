package services

import "github.com/fxdesk/currency_rates_app/internal/core/ports"

// Compile-time checks that the concrete services satisfy their facades.
var (
	_ ports.ConversionSvcFacade  = (*ConversionService)(nil)
	_ ports.RateHistorySvcFacade = (*RateHistoryService)(nil)
	_ ports.TWRRSvcFacade        = (*TWRRService)(nil)
	_ ports.ChartSvcFacade       = (*ChartAssembler)(nil)
	_ ports.CurrencySvcFacade    = (*CurrencyService)(nil)
	_ ports.IngestionSvcFacade   = (*IngestionService)(nil)
)
