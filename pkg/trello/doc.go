// Package trello provides a client library for the Trello REST API.
//
// # Overview
//
// The package defines the domain types (Board, List, Card, Checklist, Member,
// Organization, Label, Webhook) and a Client that routes their operations
// through a shared HTTP transport. Objects returned by the client carry a
// reference back to it, so navigation reads naturally:
//
//	boards, err := client.ListBoards(ctx)
//	lists, err := boards[0].AllLists(ctx)
//	cards, err := lists[0].ListCards(ctx)
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/moshloop/py-trello/pkg/trello"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  client := trello.NewWithToken("api-key", "api-token")
//
//	  boards, err := client.ListBoards(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = boards
//	}
//
// A client built with only an API key operates in public-only mode: reads of
// public resources work, and operations that require a token either no-op or
// return ErrTokenRequired.
//
// # Caching
//
// Object attributes are cached on the object from the last fetch. Comments and
// checklists on a Card are fetched lazily on first access and memoized until
// the next Card.Fetch. Collections of sub-objects (lists on a board, cards in
// a list) are never cached.
//
// # Mutation
//
// Setters write to the API first and mirror the new value onto the local
// object only after the API call succeeds. A failed setter leaves the local
// object unchanged.
//
// # Errors
//
// API failures are represented by APIError. Helpers IsUnauthorized,
// IsResourceUnavailable, and IsTokenRequired make it easy to branch on the
// common cases.
package trello
