package middlewares

const (
	CtxRequestID = "ctx.requestID"

	ctxUserIDKey = "auth.userID"
	ctxEmailKey  = "auth.email"
	ctxRoleKey   = "auth.role"
)
