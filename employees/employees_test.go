package employees

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelink/hrview/listview"
)

func TestFullName(t *testing.T) {
	assert.Equal(t, "Maria Cruz", FullName(listview.ListItem{
		"first_name": "Maria", "last_name": "Cruz",
	}))
	assert.Equal(t, "Cruz", FullName(listview.ListItem{"last_name": "Cruz"}))
	assert.Equal(t, "Maria", FullName(listview.ListItem{"first_name": "Maria"}))
	assert.Equal(t, "", FullName(listview.ListItem{}))
}

func TestArchiveConfigDiffers(t *testing.T) {
	roster := ViewConfig()
	archive := ArchiveConfig()

	// same resource, but archive offers only the restore lifecycle
	assert.Equal(t, roster.Resource, archive.Resource)
	assert.NotEqual(t, roster.Name, archive.Name)
	assert.Equal(t, []string{"restore", "purge"}, archive.Actions)
	assert.Empty(t, archive.EmptyCTA)
}

func TestStatusBadgeFallback(t *testing.T) {
	badge := StatusBadges.Lookup("Probationary")
	assert.Equal(t, "Probationary", badge.Label)
	assert.Equal(t, "neutral", badge.Color)
}
