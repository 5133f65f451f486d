package di_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utmo/cmdletdi/di"
)

func TestMarker_Forms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		marker    di.Marker
		wantName  string
		wantNamed bool
		wantStr   string
	}{
		{name: "unnamed", marker: di.Inject(), wantStr: "inject"},
		{name: "zero value is unnamed", marker: di.Marker{}, wantStr: "inject"},
		{name: "named", marker: di.InjectNamed("primary"), wantName: "primary", wantNamed: true, wantStr: `inject("primary")`},
		{name: "empty name is named", marker: di.InjectNamed(""), wantName: "", wantNamed: true, wantStr: `inject("")`},
		{name: "name kept verbatim", marker: di.InjectNamed("  spaced "), wantName: "  spaced ", wantNamed: true, wantStr: `inject("  spaced ")`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			name, named := tc.marker.Name()
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantNamed, named)
			assert.Equal(t, tc.wantNamed, tc.marker.Named())
			assert.Equal(t, tc.wantStr, tc.marker.String())
		})
	}
}

func TestMarker_WithNameReturnsCopy(t *testing.T) {
	t.Parallel()

	primary := di.InjectNamed("primary")
	secondary := primary.WithName("secondary")

	name, _ := primary.Name()
	assert.Equal(t, "primary", name)

	name, named := secondary.Name()
	assert.Equal(t, "secondary", name)
	assert.True(t, named)

	name, named = di.Inject().WithName("").Name()
	assert.Equal(t, "", name)
	assert.True(t, named)
}

func TestRequest_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*di_test.Logger", di.RequestFor[*Logger]().String())
	assert.Equal(t, `di_test.Store name "cache"`, di.NamedRequestFor[Store]("cache").String())
	assert.Equal(t, `di_test.Store name ""`, di.NamedRequestFor[Store]("").String())
	assert.Equal(t, "<nil>", di.Request{}.String())
	assert.Equal(t, reflect.TypeFor[Store](), di.NamedRequestFor[Store]("x").Type)
}
