// Package control provides the controller subsystem: controller
// variants registered in the net's controller table, an index query
// engine filtering by type and attribute values, duplicate-controller
// policies applied at creation time, and the tap-dependent transformer
// impedance characteristic manager with its diagnostic.
//
// Controllers expose their matchable state through [Controller]'s
// Attributes method rather than reflection; a key absent from that
// mapping is a query miss, never an error.
package control
