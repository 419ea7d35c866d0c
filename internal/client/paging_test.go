package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/lmtk-io/lmtk/internal/client"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler nethttp.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient, err := client.New(&lmapi.Config{
		Account:   "test",
		AccessID:  "test-id",
		AccessKey: "test-key",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)

	return apiClient
}

// v1Page renders a version-1 envelope holding items with sequential ids.
func v1Page(first, count int) string {
	items := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]interface{}{"id": first + i})
	}

	body, _ := json.Marshal(map[string]interface{}{
		"status": 200,
		"errmsg": "OK",
		"data":   map[string]interface{}{"items": items},
	})

	return string(body)
}

func TestGetAll_ThreePages(t *testing.T) {
	t.Parallel()

	var offsets, sizes []string

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		offsets = append(offsets, request.URL.Query().Get("offset"))
		sizes = append(sizes, request.URL.Query().Get("size"))

		offset, _ := strconv.Atoi(request.URL.Query().Get("offset"))

		count := 50
		if offset >= 100 {
			count = 3
		}

		_, _ = writer.Write([]byte(v1Page(offset, count)))
	})

	apiClient := newTestClient(t, handler)

	items, err := apiClient.GetAll(context.Background(), "/device/devices", nil)
	require.NoError(t, err)

	// 50 + 50 + 3 items, in server order, across exactly three requests.
	require.Len(t, items, 103)
	assert.Equal(t, []string{"0", "50", "100"}, offsets)
	assert.Equal(t, []string{"50", "50", "50"}, sizes)
	assert.Equal(t, float64(0), items[0]["id"])
	assert.Equal(t, float64(50), items[50]["id"])
	assert.Equal(t, float64(102), items[102]["id"])
}

func TestGetAll_PlatformErrorDiscardsWholeCollection(t *testing.T) {
	t.Parallel()

	requests := 0

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		requests++

		if request.URL.Query().Get("offset") == "0" {
			_, _ = writer.Write([]byte(v1Page(0, 50)))

			return
		}

		_, _ = writer.Write([]byte(`{"status":1403,"errmsg":"permission denied"}`))
	})

	apiClient := newTestClient(t, handler)

	items, err := apiClient.GetAll(context.Background(), "/device/devices", nil)
	require.Error(t, err)
	// All-or-nothing: the successfully fetched first page is discarded.
	assert.Nil(t, items)
	assert.Equal(t, 2, requests)
	assert.True(t, lmapi.IsProtocol(err))

	apiErr := &lmapi.Error{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1403, apiErr.Code)
	assert.Equal(t, "permission denied", apiErr.Message)
}

func TestGetAll_SizeCapShrinksFinalWindow(t *testing.T) {
	t.Parallel()

	var sizes []string

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		size, _ := strconv.Atoi(request.URL.Query().Get("size"))
		offset, _ := strconv.Atoi(request.URL.Query().Get("offset"))
		sizes = append(sizes, request.URL.Query().Get("size"))

		_, _ = writer.Write([]byte(v1Page(offset, size)))
	})

	apiClient := newTestClient(t, handler)

	items, err := apiClient.GetAll(context.Background(), "/device/devices", &lmapi.ListOptions{Size: 75})
	require.NoError(t, err)
	assert.Len(t, items, 75)
	assert.Equal(t, []string{"50", "25"}, sizes)
}

func TestGetAll_FewerThanOnePage(t *testing.T) {
	t.Parallel()

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "5", request.URL.Query().Get("size"))
		_, _ = writer.Write([]byte(v1Page(0, 5)))
	})

	apiClient := newTestClient(t, handler)

	items, err := apiClient.GetAll(context.Background(), "/device/devices", &lmapi.ListOptions{Size: 5})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestGetAll_V2TopLevelItems(t *testing.T) {
	t.Parallel()

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "2", request.Header.Get("X-version"))
		_, _ = writer.Write([]byte(`{"items":[{"id":1,"name":"shop"},{"id":2,"name":"api"}]}`))
	})

	apiClient := newTestClient(t, handler)

	items, err := apiClient.GetAll(context.Background(), "/website/websites", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "shop", items[0]["name"])
}

func TestGetAll_QueryEmission(t *testing.T) {
	t.Parallel()

	handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		query := request.URL.Query()
		assert.Equal(t, "displayName:%22esxi%22", query.Get("filter"))
		assert.Equal(t, "id,displayName", query.Get("fields"))
		assert.Equal(t, "+id", query.Get("sort"))
		assert.False(t, query.Has("format"))
		assert.False(t, query.Has("period"))

		_, _ = writer.Write([]byte(v1Page(0, 1)))
	})

	apiClient := newTestClient(t, handler)

	_, err := apiClient.GetAll(context.Background(), "/device/devices", &lmapi.ListOptions{
		Filter: lmapi.AttrFilter(lmapi.Attr{Attribute: "displayName:", Expression: "esxi"}),
		Fields: []string{"id", "displayName"},
		Sort:   "+id",
		Size:   1,
	})
	require.NoError(t, err)
}

func TestGetOne(t *testing.T) {
	t.Parallel()

	t.Run("returns the first item", func(t *testing.T) {
		t.Parallel()

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "1", request.URL.Query().Get("size"))
			_, _ = writer.Write([]byte(v1Page(7, 1)))
		})

		apiClient := newTestClient(t, handler)

		item, err := apiClient.GetOne(context.Background(), "/device/devices", nil)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, float64(7), item["id"])
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			_, _ = writer.Write([]byte(v1Page(0, 0)))
		})

		apiClient := newTestClient(t, handler)

		item, err := apiClient.GetOne(context.Background(), "/device/devices", nil)
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestGetData(t *testing.T) {
	t.Parallel()

	t.Run("relative period converts to millisecond epochs", func(t *testing.T) {
		t.Parallel()

		requests := 0

		var gotStart, gotEnd int64

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			requests++

			gotStart, _ = strconv.ParseInt(request.URL.Query().Get("start"), 10, 64)
			gotEnd, _ = strconv.ParseInt(request.URL.Query().Get("end"), 10, 64)
			assert.False(t, request.URL.Query().Has("size"))

			_, _ = writer.Write([]byte(`{"status":200,"data":{"datapoints":["cpu"],"values":{"web-01":[[1,2]]}}}`))
		})

		apiClient := newTestClient(t, handler)

		item, err := apiClient.GetData(context.Background(),
			"/device/devices/7/devicedatasources/3/data", &lmapi.DataOptions{Period: 1})
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 1, requests)

		now := time.Now().UnixMilli()
		assert.InDelta(t, now, gotEnd, 10_000)
		assert.InDelta(t, now-3_600_000, gotStart, 10_000)
		assert.Equal(t, int64(3_600_000), gotEnd-gotStart)
	})

	t.Run("explicit window is sent verbatim", func(t *testing.T) {
		t.Parallel()

		start := time.UnixMilli(1_700_000_000_000)
		end := time.UnixMilli(1_700_003_600_000)

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "1700000000000", request.URL.Query().Get("start"))
			assert.Equal(t, "1700003600000", request.URL.Query().Get("end"))
			assert.Equal(t, "cpu,mem", request.URL.Query().Get("datapoints"))

			_, _ = writer.Write([]byte(`{"status":200,"data":{"values":{}}}`))
		})

		apiClient := newTestClient(t, handler)

		_, err := apiClient.GetData(context.Background(), "/device/devices/7/devicedatasources/3/data",
			&lmapi.DataOptions{Start: start, End: end, Datapoints: []string{"cpu", "mem"}})
		require.NoError(t, err)
	})

	t.Run("inverted window is rejected before any request", func(t *testing.T) {
		t.Parallel()

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			t.Error("no request should have been issued")
		})

		apiClient := newTestClient(t, handler)

		_, err := apiClient.GetData(context.Background(), "/device/devices/7/devicedatasources/3/data",
			&lmapi.DataOptions{
				Start: time.UnixMilli(2_000_000_000_000),
				End:   time.UnixMilli(1_000_000_000_000),
			})
		require.Error(t, err)
		assert.True(t, lmapi.IsConfig(err))
		assert.ErrorIs(t, err, lmapi.ErrWindowInverted)
	})

	t.Run("missing window is rejected", func(t *testing.T) {
		t.Parallel()

		apiClient := newTestClient(t, nethttp.HandlerFunc(func(nethttp.ResponseWriter, *nethttp.Request) {}))

		_, err := apiClient.GetData(context.Background(), "/device/devices/7/devicedatasources/3/data", &lmapi.DataOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, lmapi.ErrWindowRequired)
	})

	t.Run("no-data platform codes yield an empty result", func(t *testing.T) {
		t.Parallel()

		for _, code := range []int{1007, 1069} {
			handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
				_, _ = writer.Write([]byte(fmt.Sprintf(`{"status":%d,"errmsg":"no such datapoint"}`, code)))
			})

			apiClient := newTestClient(t, handler)

			item, err := apiClient.GetData(context.Background(),
				"/device/devices/7/devicedatasources/3/data", &lmapi.DataOptions{Period: 2})
			require.NoError(t, err)
			assert.Nil(t, item)
		}
	})

	t.Run("other platform codes are fatal", func(t *testing.T) {
		t.Parallel()

		handler := nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			_, _ = writer.Write([]byte(`{"status":1400,"errmsg":"bad request"}`))
		})

		apiClient := newTestClient(t, handler)

		_, err := apiClient.GetData(context.Background(),
			"/device/devices/7/devicedatasources/3/data", &lmapi.DataOptions{Period: 2})
		require.Error(t, err)

		apiErr := &lmapi.Error{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 1400, apiErr.Code)
	})
}

func TestNew_RequiresAccountOrBaseURL(t *testing.T) {
	t.Parallel()

	_, err := client.New(&lmapi.Config{})
	require.Error(t, err)
	assert.True(t, lmapi.IsConfig(err))
	assert.ErrorIs(t, err, lmapi.ErrAccountRequired)
}
