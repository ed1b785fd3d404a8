// Package notifications instantiates the list-view engine for the in-app
// notification feed.
package notifications

import "github.com/carelink/hrview/listview"

const (
	CategoryInfo     = "Info"
	CategoryApproval = "Approval"
	CategoryExpiry   = "Expiry"
	CategoryCritical = "Critical"
)

var CategoryBadges = listview.BadgeSet{
	CategoryInfo:     {Label: "Info", Color: "blue"},
	CategoryApproval: {Label: "Approval", Color: "amber"},
	CategoryExpiry:   {Label: "Expiry", Color: "amber"},
	CategoryCritical: {Label: "Critical", Color: "red"},
}

// ViewConfig is the notification feed view.
func ViewConfig() listview.Config {
	return listview.Config{
		Name:     "notifications",
		Resource: "notifications",
		Columns: []listview.Column{
			{Key: "title", Label: "Title"},
			{Key: "body", Label: "Message"},
			{Key: "category", Label: "Category", Badges: CategoryBadges},
			{Key: "created_at", Label: "Received", Format: listview.Date()},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"title", "body"}},
			{Key: "category", Kind: listview.FilterEquals, Label: "Category",
				Fields:  []string{"category"},
				Options: []string{CategoryInfo, CategoryApproval, CategoryExpiry, CategoryCritical}},
			{Key: "unread", Kind: listview.FilterEquals, Label: "Unread only",
				Fields: []string{"unread"}, Options: []string{"true"}},
			{Key: "received", Kind: listview.FilterDateRange, Label: "Received",
				Fields: []string{"created_at"}},
		},
		Actions: []string{"view", "delete"},
	}
}

// New creates the notification feed controller.
func New(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(ViewConfig(), source, host)
}

func init() {
	listview.RegisterView("notifications", New)
}
