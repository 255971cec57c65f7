// Package local reads enforcement documents already downloaded to a
// directory, one <RecordID>.pdf per record.
package local
