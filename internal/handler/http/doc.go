// Package http implements the REST transport of the task manager.
//
// It wires chi routes for the auth, users, tasks and projects resources and
// the middleware chain that runs before them: CORS, panic recovery, trace
// ids, access logging, request metrics, gzip and bearer token
// authentication. Handlers decode requests, call the service layer and map
// its errors onto JSON responses.
package http
