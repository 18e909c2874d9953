// Package merge turns the files of a preset section into planned writes and
// carries those writes out.
//
// Each engine only plans: OneToOne copies files into a directory, Concat
// joins files into a single document, KeyedJSON folds JSON objects into one
// configuration file. Planning reads the current destination where the
// merge strategy needs it but never writes. Classify turns a planned write
// into a PendingChange for a scan; Writer.Apply performs it, consulting the
// conflict mode when the destination already exists. Scan and apply share
// the same plans, so they agree file for file.
package merge
