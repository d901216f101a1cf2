// Package config provides configuration loading, merging and validation for
// the chat server and the terminal client.
//
// Configuration is assembled from multiple sources in priority order (later
// sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. .env file
//  3. Environment variables
//  4. Command-line flags
//  5. JSON config file
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
