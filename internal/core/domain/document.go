package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Corpus column names. QueryText and KccAns are required.
const (
	ColumnQueryText = "QueryText"
	ColumnAnswer    = "KccAns"
	ColumnState     = "StateName"
	ColumnDistrict  = "DistrictName"
	ColumnCrop      = "Crop"
)

// RequiredColumns lists the corpus columns that must be present.
func RequiredColumns() []string {
	return []string{ColumnQueryText, ColumnAnswer}
}

// RawRecord is one advisory row from the corpus file.
type RawRecord struct {
	// Row is the zero-based ordinal of the record in the source file.
	Row int

	// QueryText is the farmer's question.
	QueryText string

	// Answer is the expert's answer.
	Answer string

	// State is the region the call came from.
	State string

	// District is the district the call came from.
	District string

	// Crop is the crop the question concerns.
	Crop string
}

// NormalizedDocument is the uniform text form of a RawRecord.
// It is the unit that gets embedded and retrieved.
type NormalizedDocument struct {
	// ID is the stringified row ordinal of the source record.
	// Stable across re-runs because skipped rows do not shift it.
	ID string `json:"id"`

	// Content is the fixed-template rendering of query, answer and metadata.
	Content string `json:"content"`
}

// DocumentsDigest fingerprints a document collection in order. An index
// records the digest of the documents it was built from.
func DocumentsDigest(docs []NormalizedDocument) string {
	h := sha256.New()
	for _, d := range docs {
		h.Write([]byte(d.ID))
		h.Write([]byte{0})
		h.Write([]byte(d.Content))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeReport summarises a normalisation run.
type NormalizeReport struct {
	// RowsRead is the number of rows read from the corpus.
	RowsRead int

	// DocumentsWritten is the number of documents persisted.
	DocumentsWritten int

	// RowsDropped is the number of rows skipped for a missing query or answer.
	RowsDropped int
}
