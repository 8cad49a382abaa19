package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	Archive
	Name string
}

func TestArchiveToggle(t *testing.T) {
	r := &record{Archive: New(), Name: "x"}
	var a Archivable = r

	assert.True(t, a.Active())
	a.Deactivate()
	assert.False(t, r.IsActive)
	a.Activate()
	assert.True(t, a.Active())
}
