// Package model defines the shared data types of docgo.
//
// A Document is an arbitrary structured value with a unique string
// identifier under the "_id" field. IndexOptions describes a secondary
// index definition as it appears in the log, and Change is the unit of
// input to the persistence layer's append path.
package model
