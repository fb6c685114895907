// Package directory fetches the remote station directory and maps its JSON
// schema into the tool's station records. The station dataset itself is a
// plain paged collection; everything interesting about it happens after the
// fetch, in normalization and ranking.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/haltepunkt/stx/internal/types"
)

const (
	defaultRequestTimeout = 20 * time.Second
	cacheExpiration       = 5 * time.Minute
	cacheCleanupInterval  = 10 * time.Minute
)

type httpClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// ItemFailure records one directory entry that could not be mapped into a
// station record. A malformed entry never aborts the batch; failures are
// collected and reported to the caller.
type ItemFailure struct {
	Offset int
	Reason string
}

// Page is one decoded slice of the remote directory.
type Page struct {
	Total    int
	Stations []types.Station
	Failures []ItemFailure
}

// Client retrieves station records from the remote directory.
type Client interface {
	FetchPage(ctx context.Context, offset int, limit int) (Page, error)
	FetchAll(ctx context.Context, observer func(fetched int, total int)) ([]types.Station, []ItemFailure, error)
}

// HTTPClient implements Client against a paged JSON endpoint. Fetched pages
// are kept in a TTL cache so repeated fetches within one process do not
// re-download unchanged data.
type HTTPClient struct {
	client      httpClient
	endpoint    string
	pageSize    int
	parallelism int
	pageCache   *gocache.Cache
}

// Options configures an HTTPClient; zero values fall back to defaults.
type Options struct {
	Endpoint    string
	PageSize    int
	Parallelism int
	Timeout     time.Duration
	Transport   httpClient
}

// NewHTTPClient constructs a directory client for the given endpoint.
func NewHTTPClient(options Options) *HTTPClient {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	transport := options.Transport
	if transport == nil {
		transport = &http.Client{Timeout: timeout}
	}
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	parallelism := options.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	return &HTTPClient{
		client:      transport,
		endpoint:    options.Endpoint,
		pageSize:    pageSize,
		parallelism: parallelism,
		pageCache:   gocache.New(cacheExpiration, cacheCleanupInterval),
	}
}

// FetchPage retrieves and maps one page of the directory.
func (directoryClient *HTTPClient) FetchPage(ctx context.Context, offset int, limit int) (Page, error) {
	cacheKey := "page:" + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
	if cachedPage, pageCached := directoryClient.pageCache.Get(cacheKey); pageCached {
		return cachedPage.(Page), nil
	}

	requestURL, urlErr := directoryClient.pageURL(offset, limit)
	if urlErr != nil {
		return Page{}, urlErr
	}
	request, requestErr := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if requestErr != nil {
		return Page{}, requestErr
	}
	response, responseErr := directoryClient.client.Do(request)
	if responseErr != nil {
		return Page{}, responseErr
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("station directory returned %d for offset %d", response.StatusCode, offset)
	}

	var envelope pageEnvelope
	if decodeErr := json.NewDecoder(response.Body).Decode(&envelope); decodeErr != nil {
		return Page{}, fmt.Errorf("decode directory page at offset %d: %w", offset, decodeErr)
	}

	page := mapEnvelope(envelope, offset)
	directoryClient.pageCache.Set(cacheKey, page, gocache.DefaultExpiration)
	return page, nil
}

// FetchAll retrieves the whole directory. The first page establishes the
// total; the remaining pages download concurrently with bounded parallelism
// and are reassembled in offset order. The observer, when non-nil, receives
// cumulative progress after every completed page.
func (directoryClient *HTTPClient) FetchAll(ctx context.Context, observer func(fetched int, total int)) ([]types.Station, []ItemFailure, error) {
	firstPage, firstErr := directoryClient.FetchPage(ctx, 0, directoryClient.pageSize)
	if firstErr != nil {
		return nil, nil, firstErr
	}

	total := firstPage.Total
	pageCount := 1
	if total > directoryClient.pageSize {
		pageCount = (total + directoryClient.pageSize - 1) / directoryClient.pageSize
	}

	pages := make([]Page, pageCount)
	pages[0] = firstPage

	var progressMutex sync.Mutex
	fetched := len(firstPage.Stations)
	if observer != nil {
		observer(fetched, total)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(directoryClient.parallelism)
	for pageIndex := 1; pageIndex < pageCount; pageIndex++ {
		pageIndex := pageIndex
		group.Go(func() error {
			page, pageErr := directoryClient.FetchPage(groupCtx, pageIndex*directoryClient.pageSize, directoryClient.pageSize)
			if pageErr != nil {
				return pageErr
			}
			pages[pageIndex] = page
			if observer != nil {
				progressMutex.Lock()
				fetched += len(page.Stations)
				observer(fetched, total)
				progressMutex.Unlock()
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return nil, nil, waitErr
	}

	stations := make([]types.Station, 0, total)
	failures := make([]ItemFailure, 0)
	for _, page := range pages {
		stations = append(stations, page.Stations...)
		failures = append(failures, page.Failures...)
	}
	sort.Slice(failures, func(firstIndex, secondIndex int) bool {
		return failures[firstIndex].Offset < failures[secondIndex].Offset
	})
	return stations, failures, nil
}

func (directoryClient *HTTPClient) pageURL(offset int, limit int) (string, error) {
	parsedEndpoint, parseErr := url.Parse(directoryClient.endpoint)
	if parseErr != nil {
		return "", fmt.Errorf("parse directory endpoint %s: %w", directoryClient.endpoint, parseErr)
	}
	query := parsedEndpoint.Query()
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	parsedEndpoint.RawQuery = query.Encode()
	return parsedEndpoint.String(), nil
}

var _ Client = (*HTTPClient)(nil)
