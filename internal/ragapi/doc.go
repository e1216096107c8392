// Package ragapi provides an HTTP client for the RAG backend.
//
// # Overview
//
// The backend manages named document collections, chunks and stores ingested
// text, answers chat queries against a collection and exposes the stored
// chunks for inspection and editing. This package wraps every endpoint in a
// typed method on *Client.
//
// # Client Usage
//
//	client, err := ragapi.NewClient("127.0.0.1:5000", 0)
//	if err != nil {
//		return fmt.Errorf("init api client: %w", err)
//	}
//
//	names, err := client.ListCollections(ctx)
//
// # Endpoints
//
//   - GET  /list_collections: collection names in server order
//   - POST /create_collection, /delete_collection: {name}
//   - GET  /status: {database_status}; anything but 200 is a failure
//   - POST /chat: {message, collection, chunk_count} → {response, chunks?}
//   - POST /clear_all: {status, message}
//   - GET  /show_session: arbitrary JSON
//   - GET  /explore?collection=NAME: {summary, documents}
//   - POST /ingest: {text, collection_name, source, chunk_size}
//   - POST /update_chunk: {action, collection, source, og_text, new_text?}
//
// # Sessions
//
// The backend keeps chat history in a cookie-backed session. The client owns
// a cookie jar so /chat, /show_session and /clear_all all see the same
// session for the lifetime of the process.
//
// # Error Handling
//
// Three failure shapes reach callers:
//
//   - *ServerError: the reply carried an `error` field (either with 200 or
//     with an error status). Message is meant for the user.
//   - Status errors: "api /explore returned status 500"
//   - Transport and decode errors, wrapped with fmt.Errorf
//
// Use errors.As to tell a *ServerError apart from the rest.
//
// # Timeouts
//
// NewClient takes an overall request timeout; zero means none, leaving
// cancellation to the request context.
package ragapi
