package errno

// code=0 request succeeded
// code=4xx client errors
// code=5xx server side errors
// code=2xxxx business errors

type Errno struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrNotFound     = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrStore          = &Errno{Code: 501, Message: "Metadata store error"}
	ErrIO             = &Errno{Code: 502, Message: "Filesystem error"}
	ErrProcessing     = &Errno{Code: 503, Message: "Video processing failed"}
	ErrUnknown        = &Errno{Code: 510, Message: "Unknown error"}

	// business errors
	ErrMissingParam        = &Errno{Code: 20001, Message: "Missing required parameter"}
	ErrContentTypeNotVideo = &Errno{Code: 20002, Message: "Only video content types are accepted"}
	ErrEmptyUpload         = &Errno{Code: 20003, Message: "Upload stream is empty"}
	ErrUploadTooLarge      = &Errno{Code: 20004, Message: "Upload exceeds the size limit"}
	ErrTitleRequired       = &Errno{Code: 20005, Message: "Title is required"}
	ErrOwnerUUIDRequired   = &Errno{Code: 20006, Message: "Owner UUID is required"}
	ErrVideoNotFound       = &Errno{Code: 20007, Message: "Video not found"}
	ErrRenditionUnknown    = &Errno{Code: 20008, Message: "Unknown rendition label"}
	ErrVideoNotReady       = &Errno{Code: 20009, Message: "Video has not finished processing"}
)
