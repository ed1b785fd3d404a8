// Package employees instantiates the list-view engine for hospital staff
// records and their personnel documents.
package employees

import (
	"net/url"

	"github.com/carelink/hrview/listview"
)

// =============================================================================
// EMPLOYEE STATUS VOCABULARY
// =============================================================================

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

// StatusBadges maps employment statuses to badges. Anything outside this
// vocabulary renders as the neutral fallback.
var StatusBadges = listview.BadgeSet{
	StatusActive:   {Label: "Active", Color: "green"},
	StatusInactive: {Label: "Inactive", Color: "slate"},
	StatusOnLeave:  {Label: "On Leave", Color: "amber"},
}

// FullName joins the name fields the way search concatenates them.
func FullName(it listview.ListItem) string {
	first, last := it.String("first_name"), it.String("last_name")
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

// =============================================================================
// VIEW CONFIGURATIONS
// =============================================================================

// ViewConfig is the roster view over active (non-archived) employees.
func ViewConfig() listview.Config {
	return listview.Config{
		Name:     "employees",
		Resource: "employees",
		Columns: []listview.Column{
			{Key: "employee_no", Label: "Employee No."},
			{Key: "first_name", Label: "First Name"},
			{Key: "last_name", Label: "Last Name"},
			{Key: "department", Label: "Department"},
			{Key: "position", Label: "Position"},
			{Key: "hire_date", Label: "Hired", Format: listview.Date()},
			{Key: "status", Label: "Status", Badges: StatusBadges},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"first_name", "last_name", "employee_no"}},
			{Key: "department", Kind: listview.FilterEquals, Label: "Department",
				Fields: []string{"department"}},
			{Key: "status", Kind: listview.FilterEquals, Label: "Status",
				Fields:  []string{"status"},
				Options: []string{StatusActive, StatusInactive, StatusOnLeave}},
			{Key: "hired", Kind: listview.FilterDateRange, Label: "Hire Date",
				Fields: []string{"hire_date"}},
		},
		Actions:  []string{"view", "edit", "delete"},
		EmptyCTA: "Add first employee",
	}
}

// ArchiveConfig is the archived-employees view: restore or permanently
// delete only.
func ArchiveConfig() listview.Config {
	cfg := ViewConfig()
	cfg.Name = "employees-archive"
	cfg.Actions = []string{"restore", "purge"}
	cfg.EmptyCTA = ""
	return cfg
}

// DocumentsConfig is the personnel documents view (licenses, contracts,
// certifications) with expiry tracking.
func DocumentsConfig() listview.Config {
	return listview.Config{
		Name:     "documents",
		Resource: "documents",
		Columns: []listview.Column{
			{Key: "title", Label: "Title"},
			{Key: "category", Label: "Category"},
			{Key: "employee_name", Label: "Employee"},
			{Key: "uploaded_at", Label: "Uploaded", Format: listview.Date()},
			{Key: "expires_at", Label: "Expires", Format: listview.Date()},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"title", "employee_name"}},
			{Key: "category", Kind: listview.FilterEquals, Label: "Category",
				Fields:  []string{"category"},
				Options: []string{"License", "Contract", "Certification", "Clearance"}},
			{Key: "expires", Kind: listview.FilterDateRange, Label: "Expiry",
				Fields: []string{"expires_at"}},
		},
		Actions: []string{"view", "delete"},
	}
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates the employee roster controller.
func New(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(ViewConfig(), source, host)
}

// NewArchive creates the archived-employees controller. The backend filters
// server-side via archived=true.
func NewArchive(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(ArchiveConfig(), source, host,
		listview.WithBaseQuery(url.Values{"archived": {"true"}}))
}

// NewDocuments creates the personnel documents controller.
func NewDocuments(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(DocumentsConfig(), source, host)
}

func init() {
	listview.RegisterView("employees", New)
	listview.RegisterView("employees-archive", NewArchive)
	listview.RegisterView("documents", NewDocuments)
}
