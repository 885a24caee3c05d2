package domain

import "net/http"

// StatusMessage returns the fixed user-facing message for an HTTP status
// code. Status 0 stands for a network-level failure with no response at
// all. Every failure of a given status reads the same to the user; the
// real cause stays in the logs.
func StatusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "session expired, please sign in again"
	case http.StatusForbidden:
		return "you do not have permission to do that"
	case http.StatusUnprocessableEntity:
		return "please correct the highlighted fields"
	case 0:
		return "network error, check your connection"
	default:
		return "something went wrong, try again later"
	}
}
