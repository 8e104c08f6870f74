// Package server exposes the agent over HTTP.
//
// Routes:
//
//	GET /fetch-template?q=<text>  runs the agent and returns {"query", "result"}
//	GET /healthCheck              returns {"status": "ok"}
//	POST /fetchCode {"query"}     searches and harvests code snippets, no model
//	                              involved; only with WithCodeFinder
//
// Every response carries an X-Request-Id header.
package server
