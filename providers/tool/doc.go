// Package tool turns typed Go functions into tools a language model can call.
//
// [NewTool] wraps a function together with its name, description and a JSON
// schema derived from the input type. Tools are kept in a [Registry], an
// ordered list with case-insensitive lookup that the agent advertises to the
// model and dispatches through.
package tool
