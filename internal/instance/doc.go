// Package instance provides schema-driven objects: values of any item of a
// linked package, created and operated on without generated code.
//
// An Object follows the same contract as generated item types. Base type
// fields are held in containers allocated through the pds value dispatch
// table; item-typed fields hold nested Objects. Objects written here read
// back in generated code and the other way round, since both produce the
// same section layout.
package instance
