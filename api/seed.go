/*
seed.go - Sample hospital dataset for demos and integration tests

PURPOSE:
  Populates the store with a small but realistic slice of hospital HR data:
  a few staff across departments, their HMO claims and enrollments, payroll
  rows, and a notification feed. The data deliberately covers the states
  the views care about - an archived employee, a blocked delete (active
  claims), expiring documents.

SEE ALSO:
  - handlers.go: SeedDatabase endpoint
*/
package api

import (
	"context"
	"fmt"

	"github.com/carelink/hrview/store/sqlite"
)

type seedRow struct {
	resource string
	archived bool
	fields   map[string]any
}

// Seed loads the sample dataset into the store.
func Seed(ctx context.Context, s *sqlite.Store) error {
	for _, row := range seedRows() {
		rec, err := s.Insert(ctx, row.resource, row.fields)
		if err != nil {
			return fmt.Errorf("seed %s: %w", row.resource, err)
		}
		if row.archived {
			if err := s.SetArchived(ctx, row.resource, rec.ID, true); err != nil {
				return fmt.Errorf("seed archive %s/%s: %w", row.resource, rec.ID, err)
			}
		}
	}
	return nil
}

func seedRows() []seedRow {
	return []seedRow{
		// Employees. e-1 has active claims, so deleting her is blocked.
		{resource: "employees", fields: map[string]any{
			"id": "e-1", "employee_no": "EMP-0001",
			"first_name": "Maria", "last_name": "Cruz",
			"department": "Nursing", "position": "Senior Nurse",
			"hire_date": "2019-03-11", "status": "Active",
		}},
		{resource: "employees", fields: map[string]any{
			"id": "e-2", "employee_no": "EMP-0002",
			"first_name": "Jose", "last_name": "Santos",
			"department": "Radiology", "position": "Technician",
			"hire_date": "2021-07-01", "status": "Active",
		}},
		{resource: "employees", fields: map[string]any{
			"id": "e-3", "employee_no": "EMP-0003",
			"first_name": "Ana", "last_name": "Reyes",
			"department": "Administration", "position": "HR Officer",
			"hire_date": "2017-01-09", "status": "On Leave",
		}},
		{resource: "employees", archived: true, fields: map[string]any{
			"id": "e-4", "employee_no": "EMP-0004",
			"first_name": "Ramon", "last_name": "Dizon",
			"department": "Maintenance", "position": "Electrician",
			"hire_date": "2015-06-15", "status": "Inactive",
		}},

		// Personnel documents.
		{resource: "documents", fields: map[string]any{
			"title": "PRC Nursing License", "category": "License",
			"employee_id": "e-1", "employee_name": "Maria Cruz",
			"uploaded_at": "2024-02-10", "expires_at": "2027-02-10",
		}},
		{resource: "documents", fields: map[string]any{
			"title": "Employment Contract", "category": "Contract",
			"employee_id": "e-2", "employee_name": "Jose Santos",
			"uploaded_at": "2021-07-01", "expires_at": "2026-06-30",
		}},

		// HMO claims. Pending/Approved claims block employee deletion.
		{resource: "claims", fields: map[string]any{
			"id": "c-1", "claim_no": "HMO-2026-014",
			"member_name": "Maria Cruz", "employee_id": "e-1",
			"provider": "St. Luke's", "amount": 15250.75,
			"filed_at": "2026-01-10", "status": "Pending",
		}},
		{resource: "claims", fields: map[string]any{
			"id": "c-2", "claim_no": "HMO-2026-021",
			"member_name": "Jose Santos", "employee_id": "e-2",
			"provider": "Makati Med", "amount": 3200.00,
			"filed_at": "2026-02-02", "status": "Reimbursed",
		}},
		{resource: "claims", fields: map[string]any{
			"id": "c-3", "claim_no": "HMO-2026-025",
			"member_name": "Ana Reyes", "employee_id": "e-3",
			"provider": "Medical City", "amount": 880.50,
			"filed_at": "2026-03-21", "status": "Denied",
		}},

		// HMO enrollments.
		{resource: "enrollments", fields: map[string]any{
			"member_name": "Maria Cruz", "employee_id": "e-1",
			"plan": "Platinum", "coverage": "Family",
			"enrolled_at": "2023-01-01", "status": "Active",
		}},
		{resource: "enrollments", fields: map[string]any{
			"member_name": "Ramon Dizon", "employee_id": "e-4",
			"plan": "Silver", "coverage": "Individual",
			"enrolled_at": "2020-05-01", "status": "Terminated",
		}},

		// Payroll.
		{resource: "salaries", fields: map[string]any{
			"employee_id": "e-1", "employee_name": "Maria Cruz",
			"department": "Nursing", "grade": "N3",
			"basic_pay": 48000, "allowance": 6500,
			"annual_cost": 2450000, "effective_at": "2026-01-01",
		}},
		{resource: "payslips", fields: map[string]any{
			"employee_id": "e-1", "employee_name": "Maria Cruz",
			"period_start": "2026-07-01", "period_end": "2026-07-15",
			"gross_pay": 27250, "total_deductions": 4320.50, "net_pay": 22929.50,
		}},
		{resource: "bonuses", fields: map[string]any{
			"employee_id": "e-2", "employee_name": "Jose Santos",
			"bonus_type": "Hazard", "amount": 4500, "granted_at": "2026-05-30",
		}},
		{resource: "deductions", fields: map[string]any{
			"employee_id": "e-1", "employee_name": "Maria Cruz",
			"deduction_type": "PhilHealth", "amount": 1125, "applied_at": "2026-07-15",
		}},

		// Notifications.
		{resource: "notifications", fields: map[string]any{
			"title": "Claim HMO-2026-014 needs review",
			"body":  "A pending claim has been waiting 14 days.",
			"category": "Approval", "unread": true, "created_at": "2026-01-24",
		}},
		{resource: "notifications", fields: map[string]any{
			"title": "License expiring",
			"body":  "PRC Nursing License for Maria Cruz expires within a year.",
			"category": "Expiry", "unread": false, "created_at": "2026-02-10",
		}},
	}
}
