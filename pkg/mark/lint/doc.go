// Package lint reports marks that are valid but likely mistakes, such as
// unknown type names, decorators that have no effect where they are used,
// and object fields without export labels.
package lint
