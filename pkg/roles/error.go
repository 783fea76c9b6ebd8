package roles

import "errors"

var (
	ErrWriteConnectNotInitialed = errors.New("write connect not initialed")
	ErrReadConnectNotInitialed  = errors.New("read connect not initialed")
	ErrWriteFailed              = errors.New("write failed")
	ErrReadFailed               = errors.New("read failed")
)
