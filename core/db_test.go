package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBOrdering_String(t *testing.T) {
	assert.Equal(t, "title ASC", DBOrdering{Field: "title", Ascending: true}.String())
	assert.Equal(t, "title DESC", DBOrdering{Field: "title"}.String())
}

func TestAllowedOrderings(t *testing.T) {
	ordering := []DBOrdering{
		{Field: "title", Ascending: true},
		{Field: "id; DROP TABLE courses"},
		{Field: "instructor"},
	}
	got := AllowedOrderings(ordering, "title", "instructor")
	assert.Equal(t, []DBOrdering{{Field: "title", Ascending: true}, {Field: "instructor"}}, got)
	assert.Empty(t, AllowedOrderings(nil, "title"))
}
