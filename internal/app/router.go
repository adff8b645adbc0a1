package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/metrics"
	"github.com/heartmarshall/fieldservice-backend/internal/transport/dataloader"
	"github.com/heartmarshall/fieldservice-backend/internal/transport/middleware"
	"github.com/heartmarshall/fieldservice-backend/internal/transport/rest"
)

// NewRouter builds the HTTP handler tree. m may be nil, in which case no
// metrics are recorded or exposed.
func NewRouter(logger *slog.Logger, cfg *config.Config, b *Backend, svc *Services, m *metrics.Metrics) http.Handler {
	health := rest.NewHealthHandler(b.Pinger, b.Driver, Version)
	viewsH := rest.NewViewHandler(svc.Views, logger)
	jobsH := rest.NewJobHandler(svc.FieldOps, logger)
	customersH := rest.NewCustomerHandler(svc.FieldOps, logger)
	techsH := rest.NewTechnicianHandler(svc.FieldOps, logger)
	invoicesH := rest.NewInvoiceHandler(svc.FieldOps, logger)
	itemsH := rest.NewItemHandler(svc.FieldOps, logger)
	usageH := rest.NewInventoryHandler(svc.Inventory, logger)
	mutationsH := rest.NewMutationHandler(svc.Views, logger)

	loaders := dataloader.Middleware(&dataloader.Repos{
		Customers:   b.Customers,
		Technicians: b.Technicians,
	})

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		if m != nil {
			h = m.Instrument(pattern, h)
		}
		mux.Handle(pattern, h)
	}

	handle("GET /live", http.HandlerFunc(health.Live))
	handle("GET /ready", http.HandlerFunc(health.Ready))
	handle("GET /health", http.HandlerFunc(health.Health))

	handle("GET /api/views/{key}", http.HandlerFunc(viewsH.Get))

	handle("GET /api/jobs", loaders(http.HandlerFunc(jobsH.List)))
	handle("GET /api/jobs/{id}", loaders(http.HandlerFunc(jobsH.Get)))
	handle("POST /api/jobs", http.HandlerFunc(jobsH.Create))
	handle("PUT /api/jobs/{id}", http.HandlerFunc(jobsH.Update))
	handle("DELETE /api/jobs/{id}", http.HandlerFunc(jobsH.Delete))
	handle("GET /api/jobs/{id}/usage", http.HandlerFunc(usageH.UsageByJob))

	handle("GET /api/customers", http.HandlerFunc(customersH.List))
	handle("GET /api/customers/{id}", http.HandlerFunc(customersH.Get))
	handle("POST /api/customers", http.HandlerFunc(customersH.Create))
	handle("PUT /api/customers/{id}", http.HandlerFunc(customersH.Update))
	handle("DELETE /api/customers/{id}", http.HandlerFunc(customersH.Delete))

	handle("GET /api/technicians", http.HandlerFunc(techsH.List))
	handle("GET /api/technicians/{id}", http.HandlerFunc(techsH.Get))
	handle("POST /api/technicians", http.HandlerFunc(techsH.Create))
	handle("PUT /api/technicians/{id}", http.HandlerFunc(techsH.Update))
	handle("POST /api/technicians/{id}/deactivate", http.HandlerFunc(techsH.Deactivate))
	handle("DELETE /api/technicians/{id}", http.HandlerFunc(techsH.Delete))

	handle("GET /api/invoices", http.HandlerFunc(invoicesH.List))
	handle("GET /api/invoices/{id}", http.HandlerFunc(invoicesH.Get))
	handle("POST /api/invoices", http.HandlerFunc(invoicesH.Create))
	handle("PUT /api/invoices/{id}", http.HandlerFunc(invoicesH.Update))
	handle("PUT /api/invoices/{id}/status", http.HandlerFunc(invoicesH.SetStatus))
	handle("POST /api/invoices/{id}/pay", http.HandlerFunc(invoicesH.MarkPaid))
	handle("DELETE /api/invoices/{id}", http.HandlerFunc(invoicesH.Delete))

	handle("GET /api/inventory", http.HandlerFunc(itemsH.List))
	handle("GET /api/inventory/{id}", http.HandlerFunc(itemsH.Get))
	handle("POST /api/inventory", http.HandlerFunc(itemsH.Create))
	handle("PUT /api/inventory/{id}", http.HandlerFunc(itemsH.Update))
	handle("DELETE /api/inventory/{id}", http.HandlerFunc(itemsH.Delete))
	handle("POST /api/inventory/{id}/usage", http.HandlerFunc(usageH.RecordUsage))

	handle("POST /api/mutations", http.HandlerFunc(mutationsH.Notify))

	if m != nil {
		mux.Handle("GET "+cfg.Metrics.Path, m.Handler())
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger, "/live", "/ready", cfg.Metrics.Path),
		middleware.Recovery(logger),
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)
	return chain(mux)
}
