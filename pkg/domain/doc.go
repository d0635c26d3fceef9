/*
Package domain defines the funnel document model: the Page, Step,
Frame, Stack, Block, Element tree, the embedded flow step graph with
its navigation records, and the value types shared by every layer
(patches, selections, violations, resolutions).

Everything here is a value type. The tree is a strict ownership
hierarchy; the only cross-references are the weak step-id references
inside flow navigation, which are looked up by id in the same flow's
step list and must be validated, never dereferenced blindly.
*/
package domain
