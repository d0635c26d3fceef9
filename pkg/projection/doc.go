/*
Package projection derives visual output properties from document
nodes. It is the consumer contract of the document model: projection
resolves responsive overrides, evaluates visibility rules, and hands
the result to the hosting render layer. How visual props become pixels
is explicitly outside this module.
*/
package projection
