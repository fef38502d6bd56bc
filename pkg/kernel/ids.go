package kernel

import "github.com/google/uuid"

// BatchID identifies one file-ingestion run.
type BatchID string

func NewBatchID() BatchID        { return BatchID(uuid.NewString()) }
func (b BatchID) String() string { return string(b) }
func (b BatchID) IsEmpty() bool  { return string(b) == "" }

// RegistroID is the storage-assigned primary key of a persisted record.
// Records leave the parsing core without one.
type RegistroID int64
