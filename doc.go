// Package linkpager provides offset pagination with page links for GORM, sqlx
// and in-memory datasets.
//
// Overview
//
// linkpager implements two pagination modes:
//   - Paginate: length-aware pagination. The dataset is counted, the requested
//     page is clamped into [1, lastPage] and fetched.
//   - SimplePaginate: no count query. perPage+1 rows are fetched and the extra
//     row only tells whether a next page exists. For large offsets the rows can
//     be fetched in two passes, keys first (see OptimizeMode).
//
// Key concepts
//   - Pager: link configuration shared by the pages of a request: page
//     parameter name, query-string passthrough, bound route, page window.
//   - Page: items plus PageState, with URL building for any page number.
//   - PageState: current/last page and the memoized window of page numbers
//     around the current page (PagesRange).
//   - Source, KeyedSource: the dataset. GORMSource, SQLSource and SliceSource
//     are provided.
//   - Request, URLGenerator: the HTTP request and the router. HTTPRequest
//     covers net/http; see the muxroute and fiberroute packages for routers.
package linkpager
