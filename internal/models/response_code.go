package models

// ResponseCode is one slot of the status code histogram.
type ResponseCode struct {
	Code        int
	Description string
}

const (
	TotalResponseCodes = 41
	IndexUndefined     = 0
	IndexOK            = 3
	IndexNotFound      = 21
)

// ResponseCodes lists the tracked HTTP status codes. Slot 0 collects anything not listed.
var ResponseCodes = [TotalResponseCodes]ResponseCode{
	{0, "Undefined response code"},
	{100, "Code 100 - Continue"},
	{101, "Code 101 - Switching Protocols"},
	{200, "Code 200 - OK"},
	{201, "Code 201 - Created"},
	{202, "Code 202 - Accepted"},
	{203, "Code 203 - Non-Authoritative Information"},
	{204, "Code 204 - No Content"},
	{205, "Code 205 - Reset Content"},
	{206, "Code 206 - Partial Content"},
	{300, "Code 300 - Multiple Choices"},
	{301, "Code 301 - Moved Permanently"},
	{302, "Code 302 - Found"},
	{303, "Code 303 - See Other"},
	{304, "Code 304 - Not Modified"},
	{305, "Code 305 - Use Proxy"},
	{307, "Code 307 - Moved Temporarily"},
	{400, "Code 400 - Bad Request"},
	{401, "Code 401 - Unauthorized"},
	{402, "Code 402 - Payment Required"},
	{403, "Code 403 - Forbidden"},
	{404, "Code 404 - Not Found"},
	{405, "Code 405 - Method Not Allowed"},
	{406, "Code 406 - Not Acceptable"},
	{407, "Code 407 - Proxy Authentication Required"},
	{408, "Code 408 - Request Timeout"},
	{409, "Code 409 - Conflict"},
	{410, "Code 410 - Gone"},
	{411, "Code 411 - Length Required"},
	{412, "Code 412 - Precondition Failed"},
	{413, "Code 413 - Request Entity Too Large"},
	{414, "Code 414 - Request-URI Too Long"},
	{415, "Code 415 - Unsupported Media Type"},
	{416, "Code 416 - Requested Range Not Satisfiable"},
	{417, "Code 417 - Expectation Failed"},
	{500, "Code 500 - Internal Server Error"},
	{501, "Code 501 - Not Implemented"},
	{502, "Code 502 - Bad Gateway"},
	{503, "Code 503 - Service Unavailable"},
	{504, "Code 504 - Gateway Timeout"},
	{505, "Code 505 - HTTP Version Not Supported"},
}

// ResponseIndex returns the histogram slot for an HTTP status code.
func ResponseIndex(code int) int {
	for i := 1; i < TotalResponseCodes; i++ {
		if ResponseCodes[i].Code == code {
			return i
		}
	}
	return IndexUndefined
}
