// Package http implements the REST and websocket transport of the chat
// server.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as bearer authentication, webhook signatures, request
// tracing, access logging and response compression are handled in this
// package before requests are delegated to the service layer. Signed-in
// clients follow their own profile through [ProfileHub].
package http
