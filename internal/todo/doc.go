// Package todo holds the to-do list rules: filtering, deadline grouping and
// the create/update/toggle/delete transforms.
//
// Every function is pure. Collections are never modified in place; each
// mutation returns a new slice that the caller should treat as the new
// authoritative collection. Functions that need the current time take it
// as a parameter. Callers that share a collection across goroutines must
// serialize mutations themselves.
package todo
