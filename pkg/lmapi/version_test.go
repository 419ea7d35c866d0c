package lmapi_test

import (
	"testing"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/stretchr/testify/assert"
)

func TestResolveVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		explicit int
		expected int
	}{
		{name: "explicit version always wins", path: "/website/websites", explicit: 5, expected: 5},
		{name: "unmatched path defaults to one", path: "/device/devices", explicit: 0, expected: 1},
		{name: "website subtree", path: "/website/websites", expected: 2},
		{name: "website by id", path: "/website/websites/3", expected: 2},
		{name: "roles", path: "/setting/roles", expected: 2},
		{name: "role groups", path: "/setting/role/groups", expected: 2},
		{name: "admins", path: "/setting/admins/7", expected: 2},
		{name: "admin groups", path: "/setting/admin/groups", expected: 2},
		{name: "internal alerts", path: "/setting/alert/internalalerts", expected: 2},
		{name: "netscans", path: "/setting/netscans", expected: 2},
		{name: "collector by id", path: "/setting/collector/collectors/9", expected: 2},
		{name: "collector collection stays default", path: "/setting/collector/collectors", expected: 1},
		{name: "unmonitored devices", path: "/device/unmonitoreddevices", expected: 2},
		{name: "dashboard widgets", path: "/dashboard/widgets/12", expected: 2},
		{name: "dashboard collection stays default", path: "/dashboard/dashboards", expected: 1},
		{name: "device properties", path: "/device/devices/12/properties", expected: 2},
		{name: "device group properties", path: "/device/groups/4/properties", expected: 2},
		{name: "device datasources collection", path: "/device/devices/12/devicedatasources", expected: 2},
		{name: "device datasource data stays default", path: "/device/devices/12/devicedatasources/3/data", expected: 1},
		{name: "service subtree", path: "/service/services", expected: 2},
		{name: "alerts stay default", path: "/alert/alerts", expected: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, lmapi.ResolveVersion(tt.path, tt.explicit))
		})
	}
}
