// Package characteristic provides interpolation objects mapping an
// input quantity (e.g. a transformer tap position) to an electrical
// value, plus helpers to register them in a net's characteristic table
// and to render sampled curves.
package characteristic
