// Package handler implements the HTTP surface of the TB16Pix Linked Data API.
//
// # Routes
//
// The landing page describes the dataset. /collections lists the grids of
// the data graph, /collections/{level} describes one grid and
// /collections/{level}/items pages through its cells. /object resolves any
// TB16Pix URI, rendering zones directly and redirecting everything else to
// its canonical route. /sparql forwards queries to the remote triple store.
//
// # Representations
//
// Every resource route negotiates a profile and a mediatype from the Accept
// and Accept-Profile headers and the _profile and _mediatype parameters.
// HTML is rendered through the view package; RDF mediatypes are serialized
// by the codec package. Responses are produced in full before anything is
// written, so a failure always yields one complete error response.
//
// # Errors
//
// Errors are classified domain errors. They are written as JSON
// {title, status, message}, as an HTML page, or as an RDF description in the
// requested syntax.
package handler
