// Package logic holds gameplay behaviors that run on top of a host rigid-body
// engine. Behaviors receive their collaborators (body, random source, debug
// route) explicitly so they can be driven by any frame loop.
package logic
