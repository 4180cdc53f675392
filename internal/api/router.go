package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digibank/backend/internal/api/handlers"
	"github.com/digibank/backend/internal/config"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/services"
)

type Deps struct {
	Cfg       config.Config
	Auth      *middleware.AuthMiddleware
	Users     *services.UserService
	Accounts  *services.AccountService
	Transfers *services.TransferService
	Payments  *services.PaymentService
	Deposits  *services.DepositService
	Cards     *services.CardService
	KYC       *services.KYCService
	Admin     *services.AdminService
	Reconcile *services.ReconcileService
}

func NewRouter(d Deps) http.Handler {
	authH := handlers.NewAuthHandler(d.Users)
	accountH := handlers.NewAccountHandler(d.Accounts)
	transferH := handlers.NewTransferHandler(d.Transfers)
	paymentH := handlers.NewPaymentHandler(d.Payments)
	depositH := handlers.NewDepositHandler(d.Deposits)
	cardH := handlers.NewCardHandler(d.Cards)
	kycH := handlers.NewKYCHandler(d.KYC)
	adminH := handlers.NewAdminHandler(d.Admin, d.Transfers, d.Users, d.Reconcile)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// authenticated user surface
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Post("/accounts", accountH.Open)
			r.Get("/accounts", accountH.List)
			r.Get("/accounts/{id}", accountH.Get)
			r.Get("/accounts/{id}/transactions", accountH.Transactions)

			r.Post("/payments/transfer", paymentH.Transfer)
			r.Post("/payments/withdrawal", paymentH.Withdraw)
			r.Get("/payments/withdrawals", paymentH.ListWithdrawals)

			r.Post("/transfers", transferH.Create)
			r.Get("/transfers", transferH.List)
			r.Get("/transfers/{id}", transferH.Get)

			r.Post("/deposits", depositH.Create)
			r.Get("/deposits", depositH.List)

			r.Post("/cards", cardH.Request)
			r.Get("/cards", cardH.List)
			r.Post("/cards/{id}/fund", cardH.Fund)

			r.Post("/kyc", kycH.Submit)
		})

		// admin surface
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth, middleware.RequireRole(models.RoleAdmin))

			r.Get("/admin/users", adminH.ListUsers)
			r.Post("/admin/users/{id}/credit-debit", adminH.CreditDebit)

			r.Get("/admin/transfers", adminH.ListTransfers)
			r.Get("/admin/transfers/export", adminH.ExportTransfers)
			r.Post("/admin/transfers/{id}/approve", adminH.ApproveTransfer)
			r.Post("/admin/transfers/{id}/decline", adminH.DeclineTransfer)
			r.Post("/admin/transfers/{id}/reverse", adminH.ReverseTransfer)

			r.Post("/admin/deposits/{id}/approve", adminH.ApproveDeposit)
			r.Post("/admin/deposits/{id}/decline", adminH.DeclineDeposit)

			r.Post("/admin/withdrawals/{id}/approve", adminH.ApproveWithdrawal)
			r.Post("/admin/withdrawals/{id}/decline", adminH.DeclineWithdrawal)

			r.Post("/admin/cards/{id}/approve", adminH.ApproveCard)
			r.Post("/admin/cards/{id}/decline", adminH.DeclineCard)

			r.Post("/admin/kyc/{id}/approve", adminH.ApproveKYC)
			r.Post("/admin/kyc/{id}/decline", adminH.DeclineKYC)

			r.Get("/admin/accounts/{id}/reconcile", adminH.ReconcileAccount)
		})
	})

	return r
}
