package http_common

type ErrorResponse struct {
	Message string `json:"message"`
}

// UserTokenHeader carries the participant's identity token. It is set by
// the server on create/join and echoed back by the client on every
// room-scoped call.
const UserTokenHeader = "X-user-token"
