package main

import (
	"telecom-billing/internal/audit"
	"telecom-billing/internal/auth"
	"telecom-billing/internal/billing"
	"telecom-billing/internal/httpapi"
	"telecom-billing/internal/lines"
	"telecom-billing/internal/rbac"
	"telecom-billing/internal/reporting"

	"github.com/gin-gonic/gin"
)

type deps struct {
	Auth    *auth.Manager
	Billing *billing.Service
	Lines   lines.Repository
	Reports *reporting.Service
	Audit   *audit.Service
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d deps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h := httpapi.Handlers{
		Auth:    d.Auth,
		Billing: d.Billing,
		Lines:   d.Lines,
		Reports: d.Reports,
		Audit:   d.Audit,
	}

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAccessToken(d.Auth))
	{
		// Identity echo, mostly for smoke testing tokens.
		v1.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"user_id": uid, "role": role})
		})

		// LINES routes
		linesGroup := v1.Group("/lines")
		{
			linesGroup.POST("/:line_id/bills/:period",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator, rbac.RoleBillingDaemon),
				h.GenerateBill)
			linesGroup.GET("/:line_id/bills/:period",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator, rbac.RoleAnalyst, rbac.RoleSupport),
				h.GetLineBill)
			linesGroup.PUT("/:line_id/contract",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator),
				h.ReplaceContract)
			linesGroup.POST("/:line_id/contract/cancel",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator),
				h.CancelContract)
		}

		// BILLS routes
		bills := v1.Group("/bills")
		bills.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator, rbac.RoleAnalyst, rbac.RoleSupport))
		{
			bills.GET("/:bill_id", h.GetBill)
		}

		// CUSTOMERS routes
		customers := v1.Group("/customers")
		customers.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleBillingOperator, rbac.RoleAnalyst, rbac.RoleSupport))
		{
			customers.GET("/:customer_id/bills/:period", h.ListCustomerBills)
		}

		// REPORTS routes
		reports := v1.Group("/reports")
		reports.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleAnalyst))
		{
			reports.GET("/revenue/:period", h.RevenueSummary)
			reports.GET("/kind-mix/:period", h.KindMix)
		}
	}
}
