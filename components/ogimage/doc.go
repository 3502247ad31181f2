// Package ogimage provides the Open Graph card renderer: query parameter
// parsing, the fixed 1200x630 card layout, and a small net/http handler that
// returns the rendered PNG.
//
// The default handler responds to GET and HEAD requests. Every parameter is
// optional and unknown parameters are ignored, so no query can produce a 4xx.
// Responses are marked Cache-Control: no-store and each request renders anew.
package ogimage
