// Package template owns the command parameter mini-language.
//
// Ownership boundary:
// - numeric literal decoding
// - particle scanning for the text (${...}) and binary ([...]) syntaxes
//
// Evaluation of instruction particles lives in package compose.
package template
