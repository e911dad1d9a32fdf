// Package serve exposes the reconciled artifact tree over HTTP.
//
// It is a read-only companion to the pipeline: card images are served from
// the artifact store under the same key layout they are written with, so a
// CDN or client can be pointed directly at this server. Requests carry a
// generated request ID that is threaded through the access logs.
package serve
