package reporting

import (
	"telecom-billing/internal/billing"
	"telecom-billing/internal/contract"
)

// RevenueSummaryRequest requests aggregated revenue for one billing period.
// CustomerID is optional; empty means all customers.

type RevenueSummaryRequest struct {
	Period     billing.Period `json:"period"`
	CustomerID string         `json:"customer_id,omitempty"`
}

type RevenueSummary struct {
	Period     billing.Period `json:"period"`
	CustomerID string         `json:"customer_id,omitempty"`
	Currency   string         `json:"currency"`

	BillCount  int   `json:"bill_count"`
	TotalMinor int64 `json:"total_minor"`

	CallRevenueMinor    int64 `json:"call_revenue_minor"`
	MonthlyRevenueMinor int64 `json:"monthly_revenue_minor"`
	AdjustmentMinor     int64 `json:"adjustment_minor"`

	BilledMinutes int `json:"billed_minutes"`
	FreeMinutes   int `json:"free_minutes"`
	RefusedCalls  int `json:"refused_calls"`

	AverageBillMinor int64 `json:"average_bill_minor"`
}

// KindMixRequest requests the per-plan breakdown of a period's revenue.

type KindMixRequest struct {
	Period billing.Period `json:"period"`
}

type KindSlice struct {
	Kind       contract.Kind `json:"kind"`
	BillCount  int           `json:"bill_count"`
	TotalMinor int64         `json:"total_minor"`
}

type KindMix struct {
	Period billing.Period `json:"period"`
	Slices []KindSlice    `json:"slices"`
}
