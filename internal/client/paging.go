package client

import (
	"context"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lmtk-io/lmtk/internal/constants"
	lmhttp "github.com/lmtk-io/lmtk/internal/http"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// pageCursor tracks one paged fetch: the next offset and, when the caller
// capped the fetch, how many items are still wanted.
type pageCursor struct {
	offset    int
	pageSize  int
	remaining int // 0 means uncapped
}

// next returns the window size for the upcoming page.
func (c *pageCursor) next() int {
	if c.remaining > 0 && c.remaining < c.pageSize {
		return c.remaining
	}

	return c.pageSize
}

// advance records one fetched page and reports whether the loop should
// continue: it stops at the cap and at a short page, the natural
// end-of-collection signal.
func (c *pageCursor) advance(got, requested int) bool {
	c.offset += got

	if c.remaining > 0 {
		c.remaining -= got
		if c.remaining <= 0 {
			return false
		}
	}

	return got >= requested
}

// GetAll accumulates a full collection across pages. Any platform-level
// error mid-collection invalidates the whole call: nothing gathered so far
// is returned alongside the error.
func (c *Client) GetAll(ctx context.Context, path string, opts *lmapi.ListOptions) ([]lmapi.Item, error) {
	if opts == nil {
		opts = &lmapi.ListOptions{}
	}

	version := lmapi.ResolveVersion(path, opts.Version)
	cursor := &pageCursor{pageSize: c.pageSize, remaining: opts.Size}

	var items []lmapi.Item

	for {
		fetch := cursor.next()

		resp, err := c.httpClient.Do(ctx, &lmhttp.Request{
			Method:  nethttp.MethodGet,
			Path:    path,
			Query:   listQuery(opts, fetch, cursor.offset),
			Version: version,
		})
		if err != nil {
			return nil, err
		}

		page, err := pageItems(version, resp)
		if err != nil {
			return nil, err
		}

		items = append(items, page...)

		if !cursor.advance(len(page), fetch) {
			break
		}
	}

	if opts.Size > 0 && len(items) > opts.Size {
		items = items[:opts.Size]
	}

	return items, nil
}

// GetOne fetches the first matching item, or nil when the collection is
// empty.
func (c *Client) GetOne(ctx context.Context, path string, opts *lmapi.ListOptions) (lmapi.Item, error) {
	one := lmapi.ListOptions{}
	if opts != nil {
		one = *opts
	}

	one.Size = 1

	items, err := c.GetAll(ctx, path, &one)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	return items[0], nil
}

// GetData fetches one non-paged time-series window. The two platform codes
// that report an empty window (datapoint not in datasource, device has no
// such datasource) yield (nil, nil); every other non-success is fatal.
func (c *Client) GetData(ctx context.Context, path string, opts *lmapi.DataOptions) (lmapi.Item, error) {
	if opts == nil {
		opts = &lmapi.DataOptions{}
	}

	start, end, err := resolveWindow(opts, time.Now())
	if err != nil {
		return nil, err
	}

	version := lmapi.ResolveVersion(path, opts.Version)

	query := url.Values{}
	if len(opts.Datapoints) > 0 {
		query.Set("datapoints", strings.Join(opts.Datapoints, ","))
	}

	if opts.Format != "" {
		query.Set("format", opts.Format)
	}

	query.Set("start", strconv.FormatInt(start.UnixMilli(), 10))
	query.Set("end", strconv.FormatInt(end.UnixMilli(), 10))

	resp, err := c.httpClient.Do(ctx, &lmhttp.Request{
		Method:  nethttp.MethodGet,
		Path:    path,
		Query:   query,
		Version: version,
	})
	if err != nil {
		return nil, err
	}

	env := resp.Envelope
	if !env.Success(version) {
		code := platformCode(version, env)
		if code == constants.ErrCodeDatapointNotInDatasource || code == constants.ErrCodeNoSuchDeviceDatasource {
			return nil, nil
		}

		return nil, platformError(resp.StatusCode, version, env)
	}

	items, err := lmapi.ExtractItems(version, env)
	if err != nil {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindProtocol, StatusCode: resp.StatusCode, Message: "extracting data window", Err: err}
	}

	if len(items) == 0 {
		return nil, nil
	}

	return items[0], nil
}

// resolveWindow turns the options into a concrete [start, end] pair: an
// explicit pair wins, otherwise a relative period in hours counted back
// from now.
func resolveWindow(opts *lmapi.DataOptions, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time

	switch {
	case !opts.Start.IsZero() || !opts.End.IsZero():
		if opts.Start.IsZero() || opts.End.IsZero() {
			return start, end, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "data window", Err: lmapi.ErrWindowRequired}
		}

		start, end = opts.Start, opts.End

	case opts.Period > 0:
		end = now
		start = end.Add(-time.Duration(opts.Period * float64(time.Hour)))

	default:
		return start, end, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "data window", Err: lmapi.ErrWindowRequired}
	}

	if start.After(end) {
		return start, end, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "data window", Err: lmapi.ErrWindowInverted}
	}

	return start, end, nil
}

// listQuery renders the list options plus cursor state into query
// parameters. Parameters are emitted only when non-empty.
func listQuery(opts *lmapi.ListOptions, size, offset int) url.Values {
	query := url.Values{}
	query.Set("size", strconv.Itoa(size))

	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	if opts.Filter != nil {
		if encoded := opts.Filter.Encode(); encoded != "" {
			query.Set("filter", encoded)
		}
	}

	if len(opts.Fields) > 0 {
		query.Set("fields", strings.Join(opts.Fields, ","))
	}

	query.Set("offset", strconv.Itoa(offset))

	if opts.Format != "" {
		query.Set("format", opts.Format)
	}

	return query
}

// pageItems checks platform-level success for one page and extracts its
// items.
func pageItems(version int, resp *lmhttp.Response) ([]lmapi.Item, error) {
	env := resp.Envelope
	if !env.Success(version) {
		return nil, platformError(resp.StatusCode, version, env)
	}

	items, err := lmapi.ExtractItems(version, env)
	if err != nil {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindProtocol, StatusCode: resp.StatusCode, Message: "extracting items", Err: err}
	}

	return items, nil
}

// platformCode returns the version-appropriate platform error code.
func platformCode(version int, env *lmapi.Envelope) int {
	if version <= 1 {
		return env.Status
	}

	return env.ErrorCode
}

// platformError builds the typed error for a platform-level failure carried
// inside an otherwise successful HTTP exchange.
func platformError(statusCode, version int, env *lmapi.Envelope) error {
	message := env.Message
	if message == "" {
		message = "platform reported failure"
	}

	return &lmapi.Error{
		Kind:       lmapi.ErrorKindProtocol,
		StatusCode: statusCode,
		Code:       platformCode(version, env),
		Message:    message,
	}
}
