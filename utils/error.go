package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// business error code: [500000, 600000)
	ErrOpenCsv        = &ServiceError{500001, "open csv error"}
	ErrReadCsv        = &ServiceError{500002, "read csv error"}
	ErrParameter      = &ServiceError{500005, "invalid parameter"}
	ErrColumnNotExist = &ServiceError{500006, "column not exist"}

	// mining error code: [510000, 520000)
	ErrShapeMismatch    = &ServiceError{510000, "feature rows and label length mismatch"}
	ErrEmptyDataset     = &ServiceError{510001, "empty dataset"}
	ErrInvalidThreshold = &ServiceError{510002, "invalid threshold"}
	ErrUnknownCode      = &ServiceError{510003, "unknown categorical code"}
	ErrCancelled        = &ServiceError{510004, "mining cancelled"}
	ErrTaskNotExist     = &ServiceError{510005, "task not exist"}
)
