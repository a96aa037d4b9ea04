// Package remote implements inventory.Upstream over the household item API.
//
// The API is the authoritative store. Every call carries the session's bearer
// token and household address; the request id from chi's RequestID
// middleware is forwarded when present so both sides log the same id.
//
// Supported operations:
//   - POST   /items/bulk   submit a batch of drafts, returns the created items
//   - GET    /items        list the household's items
//   - PUT    /items/{id}   replace name and quantity
//   - DELETE /items/{id}   decrement or remove
//
// Non-2xx responses are returned as *StatusError. Requests are never
// retried.
package remote
