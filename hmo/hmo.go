// Package hmo instantiates the list-view engine for HMO claims and plan
// enrollments.
package hmo

import "github.com/carelink/hrview/listview"

// =============================================================================
// STATUS VOCABULARIES
// =============================================================================

// Claim statuses follow the provider's lifecycle. Reimbursed is terminal.
const (
	ClaimPending    = "Pending"
	ClaimApproved   = "Approved"
	ClaimDenied     = "Denied"
	ClaimReimbursed = "Reimbursed"
)

var ClaimBadges = listview.BadgeSet{
	ClaimPending:    {Label: "Pending", Color: "amber"},
	ClaimApproved:   {Label: "Approved", Color: "green"},
	ClaimDenied:     {Label: "Denied", Color: "red"},
	ClaimReimbursed: {Label: "Reimbursed", Color: "blue"},
}

const (
	EnrollmentActive     = "Active"
	EnrollmentSuspended  = "Suspended"
	EnrollmentTerminated = "Terminated"
)

var EnrollmentBadges = listview.BadgeSet{
	EnrollmentActive:     {Label: "Active", Color: "green"},
	EnrollmentSuspended:  {Label: "Suspended", Color: "amber"},
	EnrollmentTerminated: {Label: "Terminated", Color: "red"},
}

// =============================================================================
// VIEW CONFIGURATIONS
// =============================================================================

// ClaimsConfig is the HMO claims view.
func ClaimsConfig() listview.Config {
	return listview.Config{
		Name:     "claims",
		Resource: "claims",
		Columns: []listview.Column{
			{Key: "claim_no", Label: "Claim No."},
			{Key: "member_name", Label: "Member"},
			{Key: "provider", Label: "Provider"},
			{Key: "amount", Label: "Amount", Format: listview.Currency("PHP")},
			{Key: "filed_at", Label: "Filed", Format: listview.Date()},
			{Key: "status", Label: "Status", Badges: ClaimBadges},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"member_name", "claim_no", "provider"}},
			{Key: "status", Kind: listview.FilterEquals, Label: "Status",
				Fields:  []string{"status"},
				Options: []string{ClaimPending, ClaimApproved, ClaimDenied, ClaimReimbursed}},
			{Key: "filed", Kind: listview.FilterDateRange, Label: "Filed",
				Fields: []string{"filed_at"}},
		},
		Actions:  []string{"view", "edit", "delete"},
		EmptyCTA: "File first claim",
	}
}

// EnrollmentsConfig is the HMO plan enrollments view.
func EnrollmentsConfig() listview.Config {
	return listview.Config{
		Name:     "enrollments",
		Resource: "enrollments",
		Columns: []listview.Column{
			{Key: "member_name", Label: "Member"},
			{Key: "plan", Label: "Plan"},
			{Key: "coverage", Label: "Coverage"},
			{Key: "enrolled_at", Label: "Enrolled", Format: listview.Date()},
			{Key: "status", Label: "Status", Badges: EnrollmentBadges},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"member_name"}},
			{Key: "plan", Kind: listview.FilterEquals, Label: "Plan",
				Fields: []string{"plan"}},
			{Key: "status", Kind: listview.FilterEquals, Label: "Status",
				Fields:  []string{"status"},
				Options: []string{EnrollmentActive, EnrollmentSuspended, EnrollmentTerminated}},
		},
		Actions: []string{"view", "edit", "delete"},
	}
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewClaims creates the claims controller.
func NewClaims(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(ClaimsConfig(), source, host)
}

// NewEnrollments creates the enrollments controller.
func NewEnrollments(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(EnrollmentsConfig(), source, host)
}

func init() {
	listview.RegisterView("claims", NewClaims)
	listview.RegisterView("enrollments", NewEnrollments)
}
