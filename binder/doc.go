// Package binder decodes HTTP requests into structs for handler.Wrap.
//
// BindJSON reads the body; Query and Path fill fields tagged `query` and
// `path`. Binders can be combined and run in order.
package binder
