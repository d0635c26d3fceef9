/*
Package schema describes the capability set of each element type
(choices for select widgets, numeric ranges for scales) and validates
free-form prop maps against it. Validation is advisory and sparse:
only keys present in the props map are checked, and failures aggregate
so the editor can surface them in one batch.
*/
package schema
