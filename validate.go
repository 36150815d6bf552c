package mzf

import "fmt"

func validateRecord(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if len(rec.Body) > MaxBodySize {
		return fmt.Errorf("%w: body of %d bytes", ErrLimitExceeded, len(rec.Body))
	}
	if int(rec.DataSize) != len(rec.Body) {
		return fmt.Errorf("%w: DataSize %d != body length %d", ErrInvalidRecord, rec.DataSize, len(rec.Body))
	}
	return nil
}
